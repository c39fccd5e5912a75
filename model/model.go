// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package model

import (
	"github.com/born-ml/seqnet/internal/model"
	"github.com/born-ml/seqnet/internal/serialization"
)

// Model is implemented by Network and RecurrentModel.
type Model = model.Model

// Network is a feed-forward stack of Dense layers.
type Network = model.Network

// NetworkConfig contains the options of a Network.
type NetworkConfig = model.NetworkConfig

// NewNetwork creates a Network with one Dense layer between consecutive sizes.
func NewNetwork(sizes []int, config NetworkConfig) (*Network, error) {
	return model.NewNetwork(sizes, config)
}

// RecurrentModel is a Recurrent layer followed by an identity Dense layer.
type RecurrentModel = model.RecurrentModel

// Architecture holds the widths of a RecurrentModel.
type Architecture = model.Architecture

// RecurrentConfig contains the options of a RecurrentModel.
type RecurrentConfig = model.RecurrentConfig

// DefaultRecurrentConfig returns Adam, clip 1 and uniform [0, 0.1] init.
func DefaultRecurrentConfig() RecurrentConfig {
	return model.DefaultRecurrentConfig()
}

// NewRecurrent creates a RecurrentModel.
func NewRecurrent(arch Architecture, config RecurrentConfig) (*RecurrentModel, error) {
	return model.NewRecurrent(arch, config)
}

// FromSnapshot builds a model from a snapshot's architecture and loads it.
func FromSnapshot(s *Snapshot) (Model, error) {
	return model.FromSnapshot(s)
}

// Checkpoints

// Checkpoint is the persisted training snapshot.
type Checkpoint = serialization.Checkpoint

// Snapshot is the externalized parameter set of one model.
type Snapshot = serialization.Snapshot

// ErrArchitectureMismatch is returned when a snapshot does not fit a model.
var ErrArchitectureMismatch = serialization.ErrArchitectureMismatch

// WriteCheckpoint atomically saves ckpt as JSON to path.
func WriteCheckpoint(path string, ckpt *Checkpoint) error {
	return serialization.WriteCheckpoint(path, ckpt)
}

// ReadCheckpoint loads and validates the checkpoint at path.
func ReadCheckpoint(path string) (*Checkpoint, error) {
	return serialization.ReadCheckpoint(path)
}
