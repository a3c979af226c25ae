package main

import (
	"bufio"
	"errors"
	"flag"
	"image/png"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/Flokey82/halfedge"
	"github.com/Flokey82/halfedge/obj"
	"github.com/ungerik/go3d/float64/vec3"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
var memprofile = flag.String("memprofile", "", "write memory profile to this file")
var input = flag.String("obj", "", "OBJ model to load instead of generating a sphere")
var points = flag.Int("points", 2000, "number of points of the generated sphere")
var vertex = flag.Int("vertex", 0, "vertex to extract the star of")
var fanParity = flag.Bool("fan_parity", false, "close the fan of open stars across the boundary")
var exportOBJ = flag.String("export_obj", "", "write the star as OBJ to this file")
var exportTopology = flag.String("export_topology", "", "write the topology to this file")
var exportPNG = flag.String("export_png", "", "write a preview of the star to this file")

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	cfg := halfedge.NewConfig()
	cfg.CloseOpenFans = *fanParity
	m, err := loadMesh(cfg)
	if err != nil {
		return err
	}
	m.LogStats()

	if *exportTopology != "" {
		err := writeFile(*exportTopology, func(w io.Writer) error {
			_, err := m.WriteTo(w)
			return err
		})
		if err != nil {
			return err
		}
	}

	star, err := m.Star(*vertex)
	switch {
	case errors.Is(err, halfedge.ErrUnresolvedVertex):
		log.Printf("vertex %d is not part of any face, skipping the star", *vertex)
	case err != nil:
		return err
	default:
		log.Printf("star of vertex %d: %v (closed: %t)", *vertex, star.Vertices[1:], star.Closed)
		if err := exportStar(star); err != nil {
			return err
		}
	}

	if *memprofile != "" {
		return writeFile(*memprofile, pprof.WriteHeapProfile)
	}
	return nil
}

// loadMesh loads the OBJ given by -obj or generates a sphere.
func loadMesh(cfg *halfedge.Config) (*halfedge.Mesh, error) {
	if *input != "" {
		g, err := obj.Load(*input)
		if err != nil {
			return nil, err
		}
		return halfedge.NewMeshFromGeometry(g, vec3.T{}, cfg)
	}
	sc := halfedge.NewSphereConfig()
	sc.NumPoints = *points
	sp, err := halfedge.MakeSphere(sc, cfg)
	if err != nil {
		return nil, err
	}
	return sp.Mesh, nil
}

func exportStar(star *halfedge.Star) error {
	if *exportOBJ != "" {
		err := writeFile(*exportOBJ, func(w io.Writer) error {
			return obj.Write(w, &obj.Geometry{
				Positions: star.Positions,
				Normals:   star.Normals,
				Triangles: star.Triangles,
			})
		})
		if err != nil {
			return err
		}
	}
	if *exportPNG != "" {
		return writeFile(*exportPNG, func(w io.Writer) error {
			return png.Encode(w, star.Preview(512))
		})
	}
	return nil
}

// writeFile creates the named file and fills it through a buffered writer.
func writeFile(name string, fn func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
