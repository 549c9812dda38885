package cpu

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CompileLine translates a single assembly line into an instruction word.
func CompileLine(line string) (word uint32, err error) {
	code, err := ParseCode(line)
	if err != nil {
		return
	}

	word = code.Word()
	return
}

// CompileLines translates assembly lines into instruction words, in order.
func CompileLines(lines []string) (words []uint32, err error) {
	words = make([]uint32, len(lines))
	for n, line := range lines {
		words[n], err = CompileLine(line)
		if err != nil {
			err = &ErrSyntax{LineNo: n + 1, Line: line, Err: err}
			return nil, err
		}
	}

	return
}

// DecompileWord translates an instruction word into an assembly line.
func DecompileWord(word uint32) string {
	return DecodeCode(word).String()
}

// DecompileWords translates instruction words into assembly lines, in order.
func DecompileWords(words []uint32) (lines []string) {
	lines = make([]string, len(words))
	for n, word := range words {
		lines[n] = DecompileWord(word)
	}

	return
}

// workerLimit returns the number of concurrent workers to use.
func workerLimit(workers int) (limit int, err error) {
	switch {
	case workers < 0:
		err = ErrWorkersNegative
	case workers == 0:
		limit = runtime.GOMAXPROCS(0)
	default:
		limit = workers
	}
	return
}

// batchSize is the number of lines handled by a single worker task.
const batchSize = 256

// CompileLinesParallel is CompileLines fanned out over a pool of workers.
// A workers count of 0 uses GOMAXPROCS. The first failing line cancels
// the remaining work.
func CompileLinesParallel(ctx context.Context, lines []string, workers int) (words []uint32, err error) {
	limit, err := workerLimit(workers)
	if err != nil {
		return
	}

	words = make([]uint32, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for base := 0; base < len(lines); base += batchSize {
		end := min(base+batchSize, len(lines))
		g.Go(func() error {
			for n := base; n < end; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				word, err := CompileLine(lines[n])
				if err != nil {
					return &ErrSyntax{LineNo: n + 1, Line: lines[n], Err: err}
				}
				words[n] = word
			}
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		words = nil
	}

	return
}

// DecompileWordsParallel is DecompileWords fanned out over a pool of workers.
func DecompileWordsParallel(ctx context.Context, words []uint32, workers int) (lines []string, err error) {
	limit, err := workerLimit(workers)
	if err != nil {
		return
	}

	lines = make([]string, len(words))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for base := 0; base < len(words); base += batchSize {
		end := min(base+batchSize, len(words))
		g.Go(func() error {
			for n := base; n < end; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				lines[n] = DecompileWord(words[n])
			}
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		lines = nil
	}

	return
}
