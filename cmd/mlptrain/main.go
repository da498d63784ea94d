// Command mlptrain trains a multi-layer perceptron classifier on a numeric
// CSV file and reports its training accuracy.
//
// One column of the file holds the class labels (the last one by default);
// every other column is a feature.
//
// Usage:
//
//	mlptrain -data iris.csv -header -hidden 8 -lr 0.1 -batch 16 -iters 500 \
//	    -save model.bin -plot loss.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvml/lossplot"
	"github.com/katalvlaran/lvml/matrix"
	"github.com/katalvlaran/lvml/mlp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "mlptrain:", err)
		os.Exit(1)
	}
}

// parseHidden turns "8,4" into []int{8, 4}; an empty string means no hidden layer.
func parseHidden(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 1 {
			return nil, fmt.Errorf("-hidden: bad layer size %q", p)
		}
		out[i] = v
	}

	return out, nil
}

// splitLabels separates column k of M from the feature columns.
func splitLabels(M *matrix.Dense, k int) (X, y *matrix.Dense, err error) {
	c := M.Cols()
	if k < 0 {
		k = c - 1
	}
	if c < 2 || k >= c {
		return nil, nil, fmt.Errorf("label column %d of a %d-column table: %w", k, c, matrix.ErrOutOfRange)
	}
	if y, err = matrix.SliceCols(M, k, k+1); err != nil {
		return nil, nil, err
	}
	left, err := matrix.SliceCols(M, 0, k)
	if err != nil {
		return nil, nil, err
	}
	right, err := matrix.SliceCols(M, k+1, c)
	if err != nil {
		return nil, nil, err
	}
	if X, err = matrix.HStack(left, right); err != nil {
		return nil, nil, err
	}

	return X, y, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	def := mlp.DefaultConfig()
	fs := flag.NewFlagSet("mlptrain", flag.ContinueOnError)
	fs.SetOutput(stderr)

	data := fs.String("data", "", "CSV file with features and a label column (required)")
	header := fs.Bool("header", false, "skip the first CSV record")
	labelCol := fs.Int("label-col", -1, "zero-based label column (-1 = last)")

	hidden := fs.String("hidden", "4", "comma-separated hidden layer sizes, e.g. 8,4")
	iters := fs.Int("iters", def.MaxIters, "maximum number of epochs")
	batch := fs.Int("batch", def.BatchSize, "rows per batch (0 = full batch)")
	lr := fs.Float64("lr", def.LearningRate, "learning rate")
	threshold := fs.Float64("threshold", def.ErrorThreshold, "stop when the epoch loss falls below this")
	reg := fs.Float64("reg", def.Regularization, "L2 regularization strength")
	activation := fs.String("activation", def.Activation.String(), "sigmoid, tanh, relu or linear")
	initName := fs.String("init", def.WeightInit.String(), "uniform, scaled or normal")
	adaptive := fs.Bool("adaptive", def.AdaptiveLR, "adapt the learning rate to the loss trend")
	standardize := fs.Bool("standardize", def.Standardize, "z-score the feature columns")
	shuffle := fs.Bool("shuffle", def.Shuffle, "shuffle rows before every epoch")
	workers := fs.Int("workers", def.Workers, "gradient workers per batch")
	seed := fs.Int64("seed", 1, "random seed")
	verbose := fs.Bool("verbose", false, "log every epoch")

	savePath := fs.String("save", "", "write the trained model to this file")
	plotPath := fs.String("plot", "", "write the loss curve to this image (png, svg, pdf)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *data == "" {
		fs.Usage()
		return errors.New("-data is required")
	}

	act, err := mlp.ParseActivation(*activation)
	if err != nil {
		return err
	}
	wi, err := mlp.ParseWeightInit(*initName)
	if err != nil {
		return err
	}
	layers, err := parseHidden(*hidden)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	M, err := matrix.FromCSV(*data, matrix.WithHeader(*header))
	if err != nil {
		return err
	}
	X, y, err := splitLabels(M, *labelCol)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded", "path", *data, "rows", X.Rows(), "features", X.Cols())

	net := mlp.New(mlp.NewSource(*seed))
	hist, err := net.FitLabels(ctx, X, y,
		mlp.WithHidden(layers...),
		mlp.WithMaxIters(*iters),
		mlp.WithBatchSize(*batch),
		mlp.WithLearningRate(*lr),
		mlp.WithErrorThreshold(*threshold),
		mlp.WithRegularization(*reg),
		mlp.WithActivation(act),
		mlp.WithWeightInit(wi),
		mlp.WithAdaptiveLR(*adaptive),
		mlp.WithStandardize(*standardize),
		mlp.WithShuffle(*shuffle),
		mlp.WithWorkers(*workers),
		mlp.WithVerbose(*verbose),
		mlp.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	pred, err := net.PredictLabels(X)
	if err != nil {
		return err
	}
	acc, err := mlp.Accuracy(y.Values(), pred)
	if err != nil {
		return err
	}
	cm, classes, err := mlp.ConfusionMatrix(y.Values(), pred)
	if err != nil {
		return err
	}
	last, _ := hist.Last()
	fmt.Fprintf(stdout, "topology:  %v\n", net.Topology())
	fmt.Fprintf(stdout, "epochs:    %d (%s)\n", hist.Len(), hist.Stopped)
	fmt.Fprintf(stdout, "loss:      %.6g\n", last.Loss)
	fmt.Fprintf(stdout, "accuracy:  %.4f\n", acc)
	fmt.Fprintf(stdout, "classes:   %v\n", classes)
	fmt.Fprintf(stdout, "confusion (rows = predicted, cols = true):\n%s", cm)

	if *savePath != "" {
		if err = net.SaveFile(*savePath); err != nil {
			return err
		}
		logger.Info("model saved", "path", *savePath)
	}
	if *plotPath != "" {
		if err = lossplot.Save(hist, *plotPath, lossplot.WithLearningRate(*adaptive)); err != nil {
			return err
		}
		logger.Info("loss curve saved", "path", *plotPath)
	}

	return nil
}
