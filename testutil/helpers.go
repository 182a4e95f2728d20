package testutil

import (
	"bytes"
	"io"
	"log"
	"os"
	"sync"
)

// CaptureStdout runs f with os.Stdout redirected to a pipe and returns what
// was written.
func CaptureStdout(f func()) string {
	return capture(&os.Stdout, f)
}

// CaptureStderr runs f with os.Stderr redirected to a pipe and returns what
// was written.
func CaptureStderr(f func()) string {
	return capture(&os.Stderr, f)
}

func capture(target **os.File, f func()) string {
	orig := *target
	r, w, err := os.Pipe()
	if err != nil {
		log.Printf("os.Pipe failed: %v", err)
		f()
		return ""
	}
	*target = w

	var buf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := io.Copy(&buf, r); err != nil {
			log.Printf("io.Copy failed: %v", err)
		}
	}()

	defer func() {
		*target = orig
	}()
	f()
	w.Close()
	wg.Wait()
	r.Close()
	return buf.String()
}
