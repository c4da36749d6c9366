package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var dateFlag = map[string]complete.Predictor{"d": predict.Something}

// Completion describes the wf command line for shell completion.
func Completion() *complete.Command {
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"ledger": {Flags: dateFlag},
			"allocate": {Flags: map[string]complete.Predictor{
				"amount": predict.Something,
				"d":      predict.Something,
				"notes":  predict.Something,
				"commit": predict.Nothing,
				"json":   predict.Nothing,
			}},
			"performance": {Flags: map[string]complete.Predictor{
				"d":      predict.Something,
				"json":   predict.Nothing,
				"select": predict.Set{"$[*].irr", "$[*].moic", "$[*].roi"},
			}},
			"irr": {Flags: map[string]complete.Predictor{
				"p":     predict.Something,
				"d":     predict.Something,
				"guess": predict.Something,
			}},
			"validate": {Flags: map[string]complete.Predictor{"strict": predict.Nothing}},
			"topic":    {Args: predict.Set{"records", "waterfall", "metrics", "*"}},
		},
		Flags: map[string]complete.Predictor{
			"book":     predict.Files("*.jsonl"),
			"config":   predict.Files("*.yaml"),
			"currency": predict.Set{"USD", "EUR", "GBP", "CAD"},
			"v":        predict.Nothing,
		},
	}
}
