package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/arnodel/jsonfmt"
	"github.com/panjf2000/ants/v2"
)

// writeBackAll formats each file in place, several at a time.  Errors are
// reported in the order of the files.
func (a *app) writeBackAll(files []string, formatter *jsonfmt.Formatter) int {
	errs := make([]error, len(files))

	pool, err := ants.NewPool(min(len(files), runtime.GOMAXPROCS(0)))
	if err != nil {
		return a.failed("", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, name := range files {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			errs[i] = writeBack(name, formatter)
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	status := 0
	for i, err := range errs {
		if err != nil {
			status = a.failed(files[i], err)
		}
	}
	return status
}

// writeBack formats a file into memory and then replaces it, so that it is
// left untouched if formatting fails.  The new contents are written to a
// temporary file in the same directory which is then renamed, so the file is
// never seen half written.
func writeBack(name string, formatter *jsonfmt.Formatter) error {
	in, err := os.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, in); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}
