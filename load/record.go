package load

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Record is a single row of input, indexed by field name.
type Record map[string]any

type Limit struct {
	Offset int
	Count  int
}

func (lim Limit) Apply(list []Record) []Record {
	z := len(list)
	if lim.Offset < 0 {
		lim.Offset = z + lim.Offset
	}
	if lim.Offset > 0 && lim.Offset < z {
		list = list[lim.Offset:]
	} else if lim.Offset >= z && z > 0 {
		return nil
	}
	if lim.Count > 0 && lim.Count < len(list) {
		list = list[:lim.Count]
	}
	return list
}

// ReadFile reads the records of a local file or an http(s) location. JSON is
// expected for names ending in .json, CSV otherwise.
func ReadFile(location string) ([]Record, error) {
	r, err := readFrom(location)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if strings.EqualFold(filepath.Ext(location), ".json") {
		return ReadJSON(r)
	}
	return ReadCSV(r)
}

func readFrom(location string) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		res, err := http.Get(u.String())
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, errors.Errorf("%s: request does not end with success result code (%d)", location, res.StatusCode)
		}
		return res.Body, nil
	case "", "file":
		return os.Open(u.Path)
	default:
		return nil, errors.Errorf("%s: unsupported scheme", u.Scheme)
	}
}

// ReadCSV reads records from CSV input whose first row names the fields.
// Values that look like numbers are stored as float64.
func ReadCSV(r io.Reader) ([]Record, error) {
	rs := csv.NewReader(r)
	rs.TrimLeadingSpace = true
	head, err := rs.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "fail to read csv header")
	}
	var list []Record
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrap(err, "fail to read csv row")
		}
		rec := make(Record, len(head))
		for i, name := range head {
			if i >= len(row) {
				break
			}
			rec[name] = parseValue(row[i])
		}
		list = append(list, rec)
	}
	return list, nil
}

// ReadJSON reads an array of objects. A single object is read as a list of
// one record.
func ReadJSON(r io.Reader) ([]Record, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf = bytes.TrimSpace(buf)
	if len(buf) == 0 {
		return nil, nil
	}
	if buf[0] == '{' {
		var rec Record
		if err := json.Unmarshal(buf, &rec); err != nil {
			return nil, errors.Wrap(err, "fail to decode json record")
		}
		return []Record{rec}, nil
	}
	var list []Record
	if err := json.Unmarshal(buf, &list); err != nil {
		return nil, errors.Wrap(err, "fail to decode json records")
	}
	return list, nil
}

func parseValue(str string) any {
	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return f
	}
	return str
}
