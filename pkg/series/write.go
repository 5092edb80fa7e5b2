package series

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
)

// WriteCSV writes t as comma-separated UTF-8: a header of PeriodColumn and the
// series names, then one line per row. NaN cells are left empty.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, PeriodColumn)
	header = append(header, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, len(t.Columns)+1)
	for _, r := range t.Rows {
		record[0] = r.Period
		for i := range t.Columns {
			record[i+1] = ""
			if i < len(r.Values) {
				record[i+1] = FormatValue(r.Values[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes t to path. The table is written to a temporary file in
// the same directory and renamed over path, so readers never see a partial file.
func WriteFile(path string, t Table) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // gone after a successful rename

	if err := WriteCSV(tmp, t); err != nil {
		tmp.Close() //nolint:errcheck,gosec // already failing
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
