package xmap

import "fmt"

// demoPalette colors buildings floor by floor.
var demoPalette = []Color{
	ColorHex(0x8fb8de),
	ColorHex(0xe0a96d),
	ColorHex(0x9bc995),
	ColorHex(0xd98695),
}

// BuildDemoMap builds a procedural multi-floor map: one slab per floor with
// a grid of boxes standing on it.
func BuildDemoMap(d DemoMap) *MapModel {
	m := NewMapModel("demo")
	size := d.Size
	if size <= 0 {
		size = 2000
	}
	for i := 0; i < d.Floors; i++ {
		f := NewFloor(i, float64(i)*d.FloorGap)
		f.Name = fmt.Sprintf("floor-%d", i)

		slab := NewPlane("slab", size, size, ColorHex(0xe8e8e8))
		f.AddChild(slab)

		const cells = 3
		cell := size / cells
		for gx := 0; gx < cells; gx++ {
			for gy := 0; gy < cells; gy++ {
				if (gx+gy+i)%2 == 1 {
					continue
				}
				c := demoPalette[(gx+gy*cells+i)%len(demoPalette)]
				box := NewBox(fmt.Sprintf("room-%d-%d", gx, gy), cell*0.6, cell*0.6, cell*0.3, c)
				box.SetPosition(-size/2+cell*(float64(gx)+0.5), -size/2+cell*(float64(gy)+0.5), 0)
				f.AddChild(box)
			}
		}
		m.AddFloor(f)
	}
	return m
}
