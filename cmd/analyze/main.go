// Command analyze runs the sequence detection engine from the command line.
//
//	analyze 1 4 9 16 25
//	analyze -predict 5 3 6 9
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sequentia-ai/sequentia-go/internal/models"
	"github.com/sequentia-ai/sequentia-go/internal/services"
)

func main() {
	predict := flag.Int("predict", 0, "number of values to predict")
	flag.Parse()

	values, err := parseValues(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	analyzer := services.NewSequenceAnalyzer(nil)

	if *predict > 0 {
		result := analyzer.PredictMultiple(values, *predict)
		printResult(result.DetectionResult)
		if len(result.Predictions) > 0 {
			fmt.Printf("predictions: %s\n", formatValues(result.Predictions))
		}
		if !result.Success {
			os.Exit(1)
		}
		return
	}

	result := analyzer.Analyze(values)
	printResult(result)
	if !result.Success {
		os.Exit(1)
	}
}

func parseValues(args []string) ([]float64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: analyze [-predict n] value value ...")
	}
	values := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", arg)
		}
		values = append(values, v)
	}
	return values, nil
}

func printResult(result models.DetectionResult) {
	if !result.Success {
		fmt.Printf("kind: %s (%s)\n", result.Kind, result.ErrorMessage)
		return
	}

	fmt.Printf("kind: %s (confidence %.2f)\n", result.Kind, *result.Confidence)
	switch result.Kind {
	case models.PatternArithmetic:
		fmt.Printf("difference: %g, first term: %g\n", result.Arithmetic.Difference, result.Arithmetic.FirstTerm)
	case models.PatternGeometric:
		fmt.Printf("ratio: %g, first term: %g\n", result.Geometric.Ratio, result.Geometric.FirstTerm)
	case models.PatternPolynomial:
		fmt.Printf("%s\n", result.Polynomial.Formula)
	}
	fmt.Printf("next: %g\n", *result.Prediction)
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
