package dimtable

import "github.com/piwi3910/SpoolCut/internal/model"

// builtinRows follows EN 10253-2 (3D elbows, tees, concentric reducers) and
// EN 1092-1 type 11 weld neck flanges. Reducer lengths are for the next size down.
var builtinRows = []model.DimensionRow{
	row(15, 21.3, 28, 25, 38, fl(35, 65, "M12", 4), fl(35, 65, "M12", 4)),
	row(20, 26.9, 29, 29, 38, fl(38, 75, "M12", 4), fl(38, 75, "M12", 4)),
	row(25, 33.7, 38, 38, 51, fl(38, 85, "M12", 4), fl(38, 85, "M12", 4)),
	row(32, 42.4, 48, 48, 51, fl(40, 100, "M16", 4), fl(40, 100, "M16", 4)),
	row(40, 48.3, 57, 57, 64, fl(42, 110, "M16", 4), fl(42, 110, "M16", 4)),
	row(50, 60.3, 76, 64, 76, fl(45, 125, "M16", 4), fl(45, 125, "M16", 4)),
	row(65, 76.1, 95, 76, 89, fl(45, 145, "M16", 8), fl(45, 145, "M16", 8)),
	row(80, 88.9, 114, 86, 89, fl(50, 160, "M16", 8), fl(50, 160, "M16", 8)),
	row(100, 114.3, 152, 105, 102, fl(52, 180, "M16", 8), fl(52, 180, "M16", 8)),
	row(125, 139.7, 190, 124, 127, fl(55, 210, "M16", 8), fl(55, 210, "M16", 8)),
	row(150, 168.3, 229, 143, 140, fl(55, 240, "M20", 8), fl(55, 240, "M20", 8)),
	row(200, 219.1, 305, 178, 152, fl(62, 295, "M20", 8), fl(62, 295, "M20", 12)),
	row(250, 273.0, 381, 216, 178, fl(68, 350, "M20", 12), fl(70, 355, "M24", 12)),
	row(300, 323.9, 457, 254, 203, fl(68, 400, "M20", 12), fl(78, 410, "M24", 12)),
}

func row(dn int, od, bend, tee, reducer float64, f10, f16 model.FlangeDims) model.DimensionRow {
	return model.DimensionRow{
		NominalDiameter: dn,
		OuterDiameter:   od,
		BendRadius:      bend,
		TeeHeight:       tee,
		ReducerLength:   reducer,
		Flange10:        f10,
		Flange16:        f16,
	}
}

func fl(face, bolts float64, size string, holes int) model.FlangeDims {
	return model.FlangeDims{FaceWidth: face, BoltCircle: bolts, BoltSize: size, HoleCount: holes}
}

// Default returns the built-in reference table.
func Default() *Table {
	t, err := New(builtinRows)
	if err != nil {
		// builtinRows is static and covered by tests.
		panic(err)
	}
	return t
}
