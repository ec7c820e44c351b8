// Package pkg provides the libraries behind photowall, a photo wall composer.
//
// # Overview
//
// Photowall turns a directory of photos into a single image. The pkg
// directory is organized into three areas:
//
//  1. Composition - [wall] (row-packed walls) and [randomwall] (resumable
//     random scatter)
//  2. Image plumbing - [backend] (image operations and polaroid frames),
//     [probe] (file type sniffing), [source] (cyclic candidate lists),
//     [cache] (resized thumbnails)
//  3. Support - [config], [errors], [progress], [buildinfo]
//
// # Architecture
//
// The typical data flow of a sequential wall:
//
//	source directory
//	         ↓
//	    [source] package (sorted or shuffled, endless)
//	         ↓
//	    [probe] package (skip non-images)
//	         ↓
//	    [wall] package (scale, crop, wrap, frame, append rows)
//	         ↓
//	    target image (written through a temporary file and a rename)
//
// The random wall replaces the last step with [randomwall], which composites
// one photo at a time onto a canvas persisted in the temporary directory.
//
// # Quick Start
//
// Build a two row wall:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/photowall/pkg/backend"
//	    "github.com/matzehuels/photowall/pkg/config"
//	    "github.com/matzehuels/photowall/pkg/probe"
//	    "github.com/matzehuels/photowall/pkg/source"
//	    "github.com/matzehuels/photowall/pkg/wall"
//	)
//
//	cfg := config.Default()
//	cfg.Source, cfg.Target = "/home/me/photos", "/tmp/wall.png"
//
//	src, _ := source.NewDir(cfg.Source, nil)
//	composer := wall.New(cfg, backend.NewImaging(nil), src, wall.WithProbe(probe.Magic{}))
//	path, err := composer.Assemble(context.Background(), nil)
//
// # Progress and Control
//
// Both composers report through a [progress.Sink]. Between placements they
// call CheckPause, which blocks while paused, and StopRequested, which ends
// the run. [progress.Control] implements the pause and stop side for key
// handlers and signals; a cancelled context always counts as a stop.
//
// [wall]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/wall
// [randomwall]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/randomwall
// [backend]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/backend
// [probe]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/probe
// [source]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/errors
// [progress]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/progress
// [progress.Sink]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/progress#Sink
// [progress.Control]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/progress#Control
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/photowall/pkg/buildinfo
package pkg
