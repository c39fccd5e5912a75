// Package train drives epoch-based training of a seqnet model.
//
// A Trainer repeatedly calls Model.Train on every sample, reports progress
// through logrus, tracks the best epoch loss, and optionally stops early
// when the loss stops improving.
package train

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/born-ml/seqnet/internal/data"
	"github.com/born-ml/seqnet/internal/model"
)

// ErrNoSamples is returned by Fit when the training set is empty.
var ErrNoSamples = errors.New("train: no training samples")

// Config contains the options of a training run.
type Config struct {
	Epochs   int      // Passes over the training set (default: 1)
	Schedule Schedule // Learning rate per epoch (default: Constant(0.01))
	LogEvery int      // Log progress every N epochs (default: 20)

	// Patience stops training after this many epochs without an
	// improvement larger than MinDelta. 0 disables early stopping.
	Patience int
	MinDelta float64

	// Shuffle visits samples in a new random order every epoch.
	Shuffle bool
	Rand    *rand.Rand // Source for Shuffle (default: seeded from the clock)

	// OnImprove, if set, is called whenever an epoch sets a new best loss.
	// An error aborts training.
	OnImprove func(epoch int, loss float64) error
}

// Result summarizes a training run.
type Result struct {
	Epochs    int       // Epochs completed
	FinalLoss float64   // Loss of the last completed epoch
	BestLoss  float64   // Lowest epoch loss
	BestEpoch int       // Zero-based epoch of BestLoss
	History   []float64 // Loss of every completed epoch
	Duration  time.Duration
	Stopped   bool // True when early stopping ended the run
}

// Trainer trains one model.
type Trainer struct {
	Model  model.Model
	Config Config
	Logger *logrus.Logger
}

// New creates a Trainer. A nil logger discards all output.
func New(m model.Model, config Config, logger *logrus.Logger) *Trainer {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Trainer{Model: m, Config: config, Logger: logger}
}

// Fit trains on samples for the configured number of epochs.
//
// The epoch loss is the mean of the per-sample losses returned by Train.
// The context is checked between epochs; on cancellation Fit returns the
// partial Result together with the context's error.
func (t *Trainer) Fit(ctx context.Context, samples []data.Sample) (Result, error) {
	if len(samples) == 0 {
		return Result{}, ErrNoSamples
	}
	cfg := t.config()
	log := t.logger()

	res := Result{BestLoss: math.Inf(1), BestEpoch: -1}
	start := time.Now()

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}
	sinceImprove := 0

	log.WithFields(logrus.Fields{
		"samples": len(samples),
		"epochs":  cfg.Epochs,
	}).Info("Training started")

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}

		lr := cfg.Schedule.LearningRate(epoch)
		if cfg.Shuffle {
			cfg.Rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		var total float64
		for _, i := range order {
			loss, err := t.Model.Train(samples[i].Input, samples[i].Target, lr)
			if err != nil {
				res.Duration = time.Since(start)
				return res, err
			}
			total += loss
		}
		loss := total / float64(len(samples))

		res.Epochs = epoch + 1
		res.FinalLoss = loss
		res.History = append(res.History, loss)

		if epoch%cfg.LogEvery == 0 {
			log.WithFields(logrus.Fields{
				"epoch": epoch,
				"loss":  loss,
				"lr":    lr,
			}).Info("Epoch completed")
		}

		if loss < res.BestLoss-cfg.MinDelta {
			res.BestLoss = loss
			res.BestEpoch = epoch
			sinceImprove = 0

			log.WithFields(logrus.Fields{
				"epoch": epoch,
				"loss":  loss,
			}).Debug("New best loss")

			if cfg.OnImprove != nil {
				if err := cfg.OnImprove(epoch, loss); err != nil {
					res.Duration = time.Since(start)
					return res, err
				}
			}
		} else {
			sinceImprove++
			if cfg.Patience > 0 && sinceImprove >= cfg.Patience {
				res.Stopped = true
				log.WithFields(logrus.Fields{
					"epoch":    epoch,
					"patience": sinceImprove,
				}).Info("Early stopping triggered")
				break
			}
		}
	}

	res.Duration = time.Since(start)
	log.WithFields(logrus.Fields{
		"epochs":     res.Epochs,
		"final_loss": res.FinalLoss,
		"best_loss":  res.BestLoss,
		"best_epoch": res.BestEpoch,
		"duration":   res.Duration,
	}).Info("Training finished")
	return res, nil
}

// config returns t.Config with defaults applied.
func (t *Trainer) config() Config {
	cfg := t.Config
	if cfg.Epochs <= 0 {
		cfg.Epochs = 1
	}
	if cfg.Schedule == nil {
		cfg.Schedule = Constant(0.01)
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 20
	}
	if cfg.Shuffle && cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // G404: sample order only
	}
	return cfg
}

func (t *Trainer) logger() *logrus.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
