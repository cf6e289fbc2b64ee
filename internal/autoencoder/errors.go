package autoencoder

import "errors"

// ErrInvalidArchitecture is returned when the requested sizes cannot form an
// autoencoder: the latent size must be positive and smaller than the input
// size, and there must be at least one layer.
var ErrInvalidArchitecture = errors.New("invalid autoencoder architecture")
