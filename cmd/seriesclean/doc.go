// Package main hosts the seriesclean CLI entrypoint and command graph.
//
// The Cobra command tree exposes the single-game series cleanup under the
// "Series Cleaner" group together with library maintenance commands. Config
// resolution, logger construction, and opening the library database live in
// commandContext so subcommands only deal with presentation.
package main
