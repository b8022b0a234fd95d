// Package config loads training configuration from HCL files.
//
// A file describes the network shape, the optimizer, the training schedule and
// optionally the dataset:
//
//	model {
//	  sizes = [2, 4, 4, 1]
//	  seed  = 42
//	}
//
//	optimizer "sgd" {
//	  lr       = 0.1
//	  momentum = 0
//	}
//
//	training {
//	  steps     = 50
//	  log_every = 10
//	  clip_norm = 0
//	}
//
//	sample {
//	  input  = [0, 1]
//	  target = [1]
//	}
//
// Every block is optional. Omitted values take the Default* constants. A file
// without sample blocks yields a Training with no Samples; callers supply
// their own dataset in that case.
package config
