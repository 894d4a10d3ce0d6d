// Package model provides the data structures shared by the pipeline package.
// It defines the per-run execution state, the information attached to each
// step of the chain, and the options that observe a pipeline run.
package model
