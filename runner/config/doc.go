// Package config provides settings and puzzle input management for the
// puzzle runner.
//
// The config package handles:
//   - Loading settings from the environment (prefix AOC) after an optional .env file
//   - Resolving puzzle inputs to files in the input directory
//   - Caching input text and basic shape information
//   - Listing and saving inputs
//
// Input files:
//
// An input named "beam" lives at <input dir>/beam.txt. Variants such as
// "beam-sample" are plain names too and map to beam-sample.txt.
//
// Usage:
//
//	settings, err := config.LoadSettings()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	manager, err := config.NewManager(settings.InputDir)
//	input, err := manager.Load("crucible")
//	fmt.Println(input.Rows, input.Cols)
package config
