package confini

import (
	"io"
	"os"
)

// LoadIniFile reads f fully into an owned buffer and runs StripIniCache
// over it. f is not closed by this function.
func LoadIniFile(f *os.File, format IniFormat, fInit IniStatsHandler, fForeach IniDispHandler, userData any) (ConfiniInterruptNo, error) {
	buf, err := readAll(f)
	if err != nil {
		return ConfiniEIO, err
	}
	return StripIniCache(buf, format, fInit, fForeach, userData), nil
}

// LoadIniPath opens path, reads it fully, and runs StripIniCache over an
// owned copy of its bytes, translating a missing file into ConfiniENoEnt
// rather than a bare *os.PathError.
func LoadIniPath(path string, format IniFormat, fInit IniStatsHandler, fForeach IniDispHandler, userData any) (ConfiniInterruptNo, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ConfiniENoEnt, err
		}
		return ConfiniEIO, err
	}
	defer f.Close()
	return LoadIniFile(f, format, fInit, fForeach, userData)
}

// readAll slurps f into a single owned buffer, growing geometrically --
// the in-process equivalent of the teacher's raw_buffer-refill loop in
// readerc.go, without the chunked-reader state machine a streaming C
// parser needs and a fully materialized Go buffer does not.
func readAll(f *os.File) ([]byte, error) {
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return buf, nil
			}
			return buf, err
		}
		if n == 0 {
			return buf, nil
		}
	}
}
