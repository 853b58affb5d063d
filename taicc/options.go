package taicc

type Options struct {
	MaxDepth int // if <= 0, default to DefaultMaxDepth
}
