// Package main provides the seqnet CLI.
//
// Usage:
//
//	seqnet version
//	seqnet xor     [-steps 10000] [-lr 1] [-seed 1] [-method backprop|fd]
//	seqnet train   [-epochs N] [-lr X] [-hidden N] [-samples N] [-seed N] [-out best_model.json]
//	seqnet predict [-in best_model.json]
//
// Defaults for train and predict come from SEQNET_* environment variables
// or a .env file; flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/born-ml/seqnet/internal/config"
	"github.com/born-ml/seqnet/internal/data"
	"github.com/born-ml/seqnet/internal/model"
	"github.com/born-ml/seqnet/internal/nn"
	"github.com/born-ml/seqnet/internal/optim"
	"github.com/born-ml/seqnet/internal/serialization"
	"github.com/born-ml/seqnet/internal/tensor"
	"github.com/born-ml/seqnet/internal/train"
)

const version = "v0.1.0"

// testStart is the first value of the sequence shown after training and by predict.
const testStart = 0.5

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "seqnet %s\n", version)
		return 0
	case "xor":
		err = runXOR(args[1:], stdout, stderr)
	case "train":
		err = runTrain(ctx, args[1:], stdout, stderr)
	case "predict":
		err = runPredict(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "Training interrupted.")
		return 130
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "seqnet - neural network training toolkit")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  xor        Train a [2,2,1] network on XOR and print its predictions")
	fmt.Fprintln(w, "  train      Train the recurrent model on ramp sequences, saving the best checkpoint")
	fmt.Fprintln(w, "  predict    Load a checkpoint and predict the next values of 0.5..0.9")
}

func runXOR(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("xor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	steps := fs.Int("steps", 10000, "Number of training steps")
	lr := fs.Float64("lr", 1, "Learning rate")
	seed := fs.Int64("seed", 1, "Random seed for weight initialization")
	method := fs.String("method", "backprop", "Gradient method: backprop or fd (finite differences)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", *steps)
	}
	if !(*lr > 0) {
		return fmt.Errorf("learning rate must be positive, got %v", *lr)
	}

	var step func(n *model.Network, in, target [][]float64) (float64, error)
	switch *method {
	case "backprop":
		step = func(n *model.Network, in, target [][]float64) (float64, error) {
			return n.Train(in, target, *lr)
		}
	case "fd":
		step = func(n *model.Network, in, target [][]float64) (float64, error) {
			return n.TrainFiniteDiff(in, target, *lr, model.DefaultFiniteDiffStep)
		}
	default:
		return fmt.Errorf("unknown method %q, want backprop or fd", *method)
	}

	net, err := model.NewNetwork([]int{2, 2, 1}, model.NetworkConfig{
		Hidden:    nn.Sigmoid,
		Optimizer: optim.Config{Kind: optim.KindSGD},
		Init:      tensor.Uniform(rand.New(rand.NewSource(*seed)), -1, 1), //nolint:gosec // G404: weight init
	})
	if err != nil {
		return err
	}

	batch := data.XORBatch()
	var loss float64
	for range_i := 0; range_i < *steps; range_i++ {
		if loss, err = step(net, batch.Input, batch.Target); err != nil {
			return err
		}
	}

	pred, err := net.Forward(batch.Input)
	if err != nil {
		return err
	}
	for i, in := range batch.Input {
		fmt.Fprintf(stdout, "%v -> %.4f (want %v)\n", in, pred[i][0], batch.Target[i][0])
	}
	fmt.Fprintf(stdout, "Loss: %.6f\n", loss)
	fmt.Fprintln(stdout, net)
	return nil
}

func runTrain(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "Number of epochs")
	fs.Float64Var(&cfg.LearningRate, "lr", cfg.LearningRate, "Initial learning rate")
	fs.IntVar(&cfg.HiddenSize, "hidden", cfg.HiddenSize, "Hidden layer width")
	fs.IntVar(&cfg.Samples, "samples", cfg.Samples, "Number of training sequences")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 seeds from the clock)")
	fs.StringVar(&cfg.Checkpoint, "out", cfg.Checkpoint, "Best-model checkpoint path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.LogLevel)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // G404: synthetic data and weight init

	mcfg := model.DefaultRecurrentConfig()
	mcfg.Init = tensor.Uniform(rng, 0, 0.1)
	rnn, err := model.NewRecurrent(model.Architecture{InputSize: 1, HiddenSize: cfg.HiddenSize, OutputSize: 1}, mcfg)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"model":   rnn.String(),
		"samples": cfg.Samples,
		"steps":   cfg.SequenceLength,
		"seed":    cfg.Seed,
	}).Info("Generating training data")
	samples, err := data.Ramp(rng, cfg.Samples, cfg.SequenceLength)
	if err != nil {
		return err
	}

	trainer := train.New(rnn, train.Config{
		Epochs:   cfg.Epochs,
		Schedule: train.StepDecay{Initial: cfg.LearningRate, Factor: cfg.LRDecay, Every: cfg.LRDecayEvery},
		LogEvery: cfg.LogEvery,
		OnImprove: func(_ int, loss float64) error {
			return serialization.WriteCheckpoint(cfg.Checkpoint, &serialization.Checkpoint{
				BestLoss: loss,
				Model:    rnn.Serialize(),
			})
		},
	}, logger)

	res, err := trainer.Fit(ctx, samples)
	if err != nil {
		return err
	}
	printResult(stdout, res, cfg.Checkpoint)
	return printPrediction(stdout, rnn, cfg.SequenceLength)
}

// printResult reports the best epoch. A BestEpoch of -1 means no epoch
// produced a finite improving loss, so OnImprove never wrote a checkpoint.
func printResult(w io.Writer, res train.Result, path string) {
	if res.BestEpoch < 0 {
		fmt.Fprintf(w, "No improving epoch in %d epochs (final loss %v), no checkpoint saved\n", res.Epochs, res.FinalLoss)
		return
	}
	fmt.Fprintf(w, "Best loss %.6f at epoch %d, saved to %s\n", res.BestLoss, res.BestEpoch, path)
}

func runPredict(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", cfg.Checkpoint, "Checkpoint to load")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ckpt, err := serialization.ReadCheckpoint(*in)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no saved best model found at %s, please run training first", *in)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Loaded best model with loss: %v\n", ckpt.BestLoss)

	m, err := model.FromSnapshot(ckpt.Model)
	if err != nil {
		return err
	}
	return printPrediction(stdout, m, cfg.SequenceLength)
}

func printPrediction(w io.Writer, m model.Model, steps int) error {
	seq := data.RampSequence(testStart, steps)
	pred, err := m.Forward(seq)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Test sequence:", seq)
	fmt.Fprintln(w, "Predicted next values:", pred)
	return nil
}

func newLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}
