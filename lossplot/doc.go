// Package lossplot renders the training history of an mlp.Network as a line
// chart: loss per epoch, optionally with the learning rate in a second panel
// underneath.
//
// The output format follows the file extension (png, svg, pdf, eps, jpg, tif)
// and is produced by gonum.org/v1/plot.
//
// Usage:
//
//	hist, err := net.Fit(ctx, X, Y)
//	err = lossplot.Save(hist, "loss.png", lossplot.WithLogScale(true))
package lossplot
