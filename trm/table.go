// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trm

import (
	"strconv"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
)

// ConfigTractTable configures dt to hold one row per tract segment
func ConfigTractTable(dt *etable.Table) {
	dt.SetMetaData("name", "Tract")
	dt.SetMetaData("desc", "Vocal tract shape and waveguide state per segment")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(4))

	sch := etable.Schema{
		{Name: "Segment", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Diameter", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Target", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Rest", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Reflection", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "MaxAmp", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "NoseDiameter", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "NoseMaxAmp", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt.SetFromSchema(sch, N)
}

// TractTable fills dt with the current shape: N rows, nose columns are 0
// for segments before NoseStart
func (pt *PinkTrombone) TractTable(dt *etable.Table) {
	ConfigTractTable(dt)
	sh := &pt.Shaper
	tr := pt.Tract()
	for i := 0; i < N; i++ {
		dt.SetCellFloat("Segment", i, float64(i))
		dt.SetCellFloat("Diameter", i, tr.Diameter[i])
		dt.SetCellFloat("Target", i, sh.TargetDiameter[i])
		dt.SetCellFloat("Rest", i, sh.RestDiameter(i))
		dt.SetCellFloat("Reflection", i, tr.NewReflection[i])
		dt.SetCellFloat("MaxAmp", i, tr.MaxAmplitude[i])
		if ni := i - NoseStart; ni >= 0 && ni < NoseLen {
			dt.SetCellFloat("NoseDiameter", i, tr.NoseDiameter[ni])
			dt.SetCellFloat("NoseMaxAmp", i, tr.NoseMaxAmplitude[ni])
		}
	}
}

// SaveTractCSV writes the tract table to a comma separated file
func (pt *PinkTrombone) SaveTractCSV(fn gi.FileName) error {
	dt := &etable.Table{}
	pt.TractTable(dt)
	return dt.SaveCSV(fn, etable.Comma, etable.Headers)
}
