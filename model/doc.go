// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package model provides trainable seqnet models.
//
// # Overview
//
// Two models are available:
//   - Network: feed-forward stack of Dense layers, built from layer widths
//   - RecurrentModel: a Recurrent layer followed by an identity Dense layer
//
// Both implement Model:
//
//	net, err := model.NewNetwork([]int{2, 2, 1}, model.NetworkConfig{
//	    Hidden:    nn.Sigmoid,
//	    Optimizer: optim.Config{Kind: optim.KindSGD},
//	})
//	for range 10000 {
//	    loss, err := net.Train(inputs, targets, 1.0)
//	}
//	pred, err := net.Forward(inputs)
//
// # Checkpoints
//
// Serialize returns only the learnable parameters; Load checks the
// architecture and every tensor shape before writing anything:
//
//	ckpt := &model.Checkpoint{BestLoss: loss, Model: rnn.Serialize()}
//	err := model.WriteCheckpoint("best_model.json", ckpt)
//
//	ckpt, err = model.ReadCheckpoint("best_model.json")
//	m, err := model.FromSnapshot(ckpt.Model)
package model
