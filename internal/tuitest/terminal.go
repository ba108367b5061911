package tuitest

import (
	"bytes"
	"io"
)

// query is a terminal capability request the program may emit at startup,
// paired with the reply a real terminal would send.
type query struct {
	request []byte
	reply   []byte
}

var terminalQueries = []query{
	{request: []byte("\x1b[6n"), reply: []byte("\x1b[1;1R")},
	{request: []byte("\x1b]10;?\x07"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{request: []byte("\x1b]10;?\x1b\\"), reply: []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{request: []byte("\x1b]11;?\x07"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{request: []byte("\x1b]11;?\x1b\\"), reply: []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderMaxBuffer = 256
	responderTail      = 64
)

// responder answers terminal queries so programs that probe colors or the
// cursor position do not stall inside the PTY.
type responder struct {
	w   io.Writer
	buf []byte
}

func newResponder(w io.Writer) *responder {
	return &responder{w: w, buf: make([]byte, 0, 2*responderMaxBuffer)}
}

func (r *responder) Process(chunk []byte) {
	r.buf = append(r.buf, chunk...)
	for r.answerNext() {
	}
	// sequences may span reads, so a short tail survives trimming
	if len(r.buf) > responderMaxBuffer {
		r.buf = append(r.buf[:0], r.buf[len(r.buf)-responderTail:]...)
	}
}

// answerNext replies to the earliest pending query and reports whether one
// was found.
func (r *responder) answerNext() bool {
	first, at := -1, -1
	for i, q := range terminalQueries {
		idx := bytes.Index(r.buf, q.request)
		if idx >= 0 && (at < 0 || idx < at) {
			first, at = i, idx
		}
	}
	if first < 0 {
		return false
	}
	q := terminalQueries[first]
	r.buf = r.buf[at+len(q.request):]
	_, _ = r.w.Write(q.reply)
	return true
}
