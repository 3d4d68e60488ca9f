package main

import (
	charts "github.com/midbel/livecharts"
	"github.com/midbel/livecharts/load"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// dataset holds the points read from input files, grouped by serie.
type dataset[T charts.Key] struct {
	ids    []string
	groups map[string][]charts.Point[T, float64]
}

func (d *dataset[T]) merge(ids []string, groups map[string][]charts.Point[T, float64]) {
	for _, id := range ids {
		if _, ok := d.groups[id]; !ok {
			d.ids = append(d.ids, id)
		}
		d.groups[id] = append(d.groups[id], groups[id]...)
	}
}

// readDataset reads every file. Records are split by the serie field of the
// decoder; a file without serie field is a serie named after the file.
func readDataset[T charts.Key](files []string, dec load.Decoder[T], lim load.Limit) (*dataset[T], error) {
	ds := dataset[T]{
		groups: make(map[string][]charts.Point[T, float64]),
	}
	for _, file := range files {
		list, err := load.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: fail to read records", file)
		}
		list = lim.Apply(list)
		ids, groups, err := dec.Group(list, serieName(file))
		if err != nil {
			return nil, errors.Wrapf(err, "%s: fail to decode records", file)
		}
		log.WithFields(log.Fields{
			"file":    file,
			"records": len(list),
			"series":  len(ids),
		}).Debug("records loaded")
		ds.merge(ids, groups)
	}
	return &ds, nil
}

// feed adds the series of the dataset to the chart and sends their points in
// batches of size points per serie. A batch size of zero sends everything in
// one update.
func feed[T charts.Key](ch *charts.Chart[T], ds *dataset[T], size int) error {
	for _, id := range ds.ids {
		if err := ch.Add(id, ""); err != nil {
			return err
		}
	}
	if size <= 0 {
		ch.Update(ds.groups)
		return nil
	}
	for offset := 0; ; offset += size {
		batch := make(map[string][]charts.Point[T, float64])
		for id, points := range ds.groups {
			if offset >= len(points) {
				continue
			}
			batch[id] = points[offset:min(offset+size, len(points))]
		}
		if len(batch) == 0 {
			break
		}
		u := ch.Update(batch)
		log.WithFields(log.Fields{
			"offset":  offset,
			"slide":   u.Slide,
			"evicted": u.Evicted,
		}).Debug("batch merged")
	}
	return nil
}

// buildChart loads the files into a new chart.
func buildChart[T charts.Key](opts charts.Options, flags *chartFlags, batch int, files []string, options ...charts.Option) (*charts.Chart[T], error) {
	dec, err := load.NewDecoder[T](opts)
	if err != nil {
		return nil, err
	}
	dec.Serie = flags.SerieField
	ds, err := readDataset(files, dec, flags.limit())
	if err != nil {
		return nil, err
	}
	ch, err := charts.New[T](opts, options...)
	if err != nil {
		return nil, err
	}
	if err := feed(ch, ds, batch); err != nil {
		ch.Close()
		return nil, err
	}
	return ch, nil
}

func parseKey[T charts.Key](opts charts.Options, str string) (T, error) {
	dec, err := load.NewDecoder[T](opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec.Key(str)
}
