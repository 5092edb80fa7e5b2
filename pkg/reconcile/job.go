package reconcile

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
)

// Job is one topic directory to reconcile.
type Job struct {
	// Dir is the <region>_<language> directory name.
	Dir string
	// Topic is the topic directory name inside Dir.
	Topic string

	DirPath   string
	TopicPath string

	// Files are the exports to merge, in merge order.
	Files []string
}

// RawPath returns where the raw merge of the job is written.
func (j Job) RawPath() string {
	return filepath.Join(j.DirPath, j.outputBase()+constants.RawSuffix)
}

// AdjustedPath returns where the ratio-linked merge of the job is written.
func (j Job) AdjustedPath() string {
	return filepath.Join(j.DirPath, j.outputBase()+constants.AdjustedSuffix)
}

func (j Job) outputBase() string {
	return j.Topic + "_" + j.Dir
}

// Discover finds every <root>/<dir>/<topic>/ directory and the exports it
// holds. Jobs are ordered by dir then topic and files by name, so repeated
// runs merge in the same order. Hidden directories and generated query
// directories are ignored; a topic without exports is still returned.
func Discover(root string) ([]Job, error) {
	fsys := os.DirFS(root)

	dirs, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.WrapIO("read", root, err)
	}

	var jobs []Job
	for _, d := range dirs {
		if !d.IsDir() || hidden(d.Name()) {
			continue
		}
		topics, err := fs.ReadDir(fsys, d.Name())
		if err != nil {
			return nil, errors.WrapIO("read", filepath.Join(root, d.Name()), err)
		}
		for _, t := range topics {
			if !t.IsDir() || hidden(t.Name()) || t.Name() == constants.QueriesDir {
				continue
			}
			job := Job{
				Dir:       d.Name(),
				Topic:     t.Name(),
				DirPath:   filepath.Join(root, d.Name()),
				TopicPath: filepath.Join(root, d.Name(), t.Name()),
			}
			job.Files, err = exports(job.TopicPath)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
	}

	slices.SortFunc(jobs, func(a, b Job) int {
		if c := strings.Compare(a.Dir, b.Dir); c != 0 {
			return c
		}
		return strings.Compare(a.Topic, b.Topic)
	})
	return jobs, nil
}

// exports lists the export files directly inside dir, sorted by name.
func exports(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), constants.ExportGlob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.WrapIO("glob", dir, err)
	}
	slices.Sort(matches)

	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return files, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
