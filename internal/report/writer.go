package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"

	"github.com/bomweave/bomweave/bomweave/format"
	"github.com/bomweave/bomweave/bomweave/model"
	"github.com/bomweave/bomweave/internal/log"
)

// BomWriter serializes a BOM to one or more configured destinations.
type BomWriter interface {
	Write(bom *model.Bom) error
}

var _ interface {
	io.Closer
	BomWriter
} = (*bomMultiWriter)(nil)

// MakeBomWriter creates a BomWriter for the given outputs or returns an error.
// Each output takes the form "<encoding>" or "<encoding>=<file>"; outputs
// without a file fall back to defaultFile, and to stdout when that is empty
// too. BomWriter.Close() should be called when there is no error.
func MakeBomWriter(outputs []string, defaultFile string, version format.SpecVersion) (BomWriter, error) {
	descriptions, err := parseOutputFlags(outputs, defaultFile, version)
	if err != nil {
		return nil, err
	}

	return newMultiWriter(descriptions...)
}

// parseOutputFlags parses command-line output option strings, retaining the
// default-file behavior of --file.
func parseOutputFlags(outputs []string, defaultFile string, version format.SpecVersion) (out []bomWriterDescription, errs error) {
	if len(outputs) == 0 {
		outputs = append(outputs, string(format.JSON))
	}

	for _, name := range outputs {
		name = strings.TrimSpace(name)

		// split to at most two parts for <encoding>=<file>
		parts := strings.SplitN(name, "=", 2)
		name = parts[0]

		file := defaultFile
		if len(parts) > 1 {
			file = parts[1]
		}

		encoding, err := format.ParseEncoding(name)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		out = append(out, newWriterDescription(encoding, version, file))
	}
	return out, errs
}

// bomWriterDescription is the encoding, version, and path used to create one
// destination writer.
type bomWriterDescription struct {
	Encoding format.Encoding
	Version  format.SpecVersion
	Path     string
}

func newWriterDescription(e format.Encoding, v format.SpecVersion, p string) bomWriterDescription {
	expandedPath, err := homedir.Expand(p)
	if err != nil {
		log.Warnf("could not expand given writer output path=%q: %v", p, err)
		// ignore errors
		expandedPath = p
	}
	return bomWriterDescription{
		Encoding: e,
		Version:  v,
		Path:     expandedPath,
	}
}

// bomMultiWriter applies Write and Close to a list of child writers.
type bomMultiWriter struct {
	writers []*bomStreamWriter
}

func newMultiWriter(descriptions ...bomWriterDescription) (*bomMultiWriter, error) {
	if len(descriptions) == 0 {
		return nil, fmt.Errorf("no output options provided")
	}

	out := &bomMultiWriter{}

	for _, d := range descriptions {
		switch len(d.Path) {
		case 0:
			out.writers = append(out.writers, &bomStreamWriter{
				encoding: d.Encoding,
				version:  d.Version,
				out:      os.Stdout,
			})
		default:
			// create any missing subdirectories
			dir := filepath.Dir(d.Path)
			if dir != "" {
				s, err := os.Stat(dir)
				if err != nil {
					if err = os.MkdirAll(dir, 0755); err != nil {
						return nil, err
					}
				} else if !s.IsDir() {
					return nil, fmt.Errorf("output path does not contain a valid directory: %s", d.Path)
				}
			}
			fileOut, err := os.OpenFile(d.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				return nil, fmt.Errorf("unable to create output file: %w", err)
			}
			out.writers = append(out.writers, &bomStreamWriter{
				encoding: d.Encoding,
				version:  d.Version,
				out:      fileOut,
			})
		}
	}

	return out, nil
}

// Write serializes the BOM to all destinations.
func (m *bomMultiWriter) Write(bom *model.Bom) (errs error) {
	for _, w := range m.writers {
		if err := w.Write(bom); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("unable to write output: %w", err))
		}
	}
	return errs
}

// Close any resources, such as open files.
func (m *bomMultiWriter) Close() (errs error) {
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

// bomStreamWriter serializes a BOM to a single io.Writer.
type bomStreamWriter struct {
	encoding format.Encoding
	version  format.SpecVersion
	out      io.Writer
}

func (w *bomStreamWriter) Write(bom *model.Bom) error {
	return format.Serialize(bom, w.out, w.version, w.encoding)
}

func (w *bomStreamWriter) Close() error {
	if closer, ok := w.out.(io.Closer); ok && w.out != os.Stdout {
		return closer.Close()
	}
	return nil
}
