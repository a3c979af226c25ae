package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Flokey82/halfedge"
	"github.com/Flokey82/halfedge/obj"
	"github.com/gorilla/mux"
	"github.com/ungerik/go3d/float64/vec3"
)

// objFlags collects repeated -obj name=path flags.
type objFlags []string

func (o *objFlags) String() string {
	return strings.Join(*o, ",")
}

func (o *objFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("want name=path, got %q", v)
	}
	*o = append(*o, v)
	return nil
}

var (
	listen       string  = ":3333"
	objFiles     objFlags
	seed         int64   = 12345
	spherePoints int     = 2000
	roughness    float64 = 0.05
	patchPoints  int     = 200
	fanParity    bool    = false
	nonManifold  string  = "warn"
	previewSize  int     = 256
	staticDir    string  = "static"
)

func init() {
	flag.StringVar(&listen, "listen", listen, "address to listen on")
	flag.Var(&objFiles, "obj", "OBJ model to load as name=path (repeatable)")
	flag.Int64Var(&seed, "seed", seed, "seed of the generated meshes")
	flag.IntVar(&spherePoints, "sphere_points", spherePoints, "number of points of the generated sphere (0 disables it)")
	flag.Float64Var(&roughness, "roughness", roughness, "radial noise displacement of the sphere")
	flag.IntVar(&patchPoints, "patch_points", patchPoints, "number of points of the generated patch (0 disables it)")
	flag.BoolVar(&fanParity, "fan_parity", fanParity, "close the fan of open stars across the boundary")
	flag.StringVar(&nonManifold, "non_manifold", nonManifold, "non-manifold edge policy: warn, ignore or reject")
	flag.IntVar(&previewSize, "preview_size", previewSize, "size of star preview images in pixels")
	flag.StringVar(&staticDir, "static", staticDir, "directory with the web client")
}

type server struct {
	scene  *halfedge.Scene
	sphere *halfedge.Sphere
}

func main() {
	flag.Parse()

	// Initialize the config.
	cfg := halfedge.NewConfig()
	cfg.CloseOpenFans = fanParity
	policy, err := halfedge.ParseNonManifoldPolicy(nonManifold)
	if err != nil {
		log.Fatal(err)
	}
	cfg.NonManifold = policy

	// Load the models side by side along the X axis.
	s := &server{scene: halfedge.NewScene()}
	for i, of := range objFiles {
		name, path, _ := strings.Cut(of, "=")
		g, err := obj.Load(path)
		if err != nil {
			log.Fatal(err)
		}
		m, err := halfedge.NewMeshFromGeometry(g, vec3.T{3 * float64(i), 0, 0}, cfg)
		if err != nil {
			log.Fatalf("%s: %v", path, err)
		}
		m.RotateY = i%2 == 0
		log.Println("loaded", name, "from", path)
		m.LogStats()
		s.scene.AddMesh(name, m)
	}

	// Generate the sphere and patch.
	if spherePoints > 0 {
		sc := halfedge.NewSphereConfig()
		sc.Seed = seed
		sc.NumPoints = spherePoints
		sc.Roughness = roughness
		sp, err := halfedge.MakeSphere(sc, cfg)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("generated sphere")
		sp.LogStats()
		s.sphere = sp
		s.scene.AddMesh("sphere", sp.Mesh)
	}
	if patchPoints > 0 {
		p, err := halfedge.MakePatch(seed, patchPoints, cfg)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("generated patch")
		p.LogStats()
		s.scene.AddMesh("patch", p)
	}

	log.Fatal(http.ListenAndServe(listen, s.router()))
}

func (s *server) router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/meshes", s.meshesHandler).Methods(http.MethodGet)
	router.HandleFunc("/meshes/{name}/buffers", s.buffersHandler).Methods(http.MethodGet)
	router.HandleFunc("/meshes/{name}/topology", s.topologyHandler).Methods(http.MethodGet)
	router.HandleFunc("/meshes/{name}/stars/{v:[0-9]+}", s.addStarHandler).Methods(http.MethodPost)
	router.HandleFunc("/meshes/{name}/stars/{v:[0-9]+}.png", s.starPreviewHandler).Methods(http.MethodGet)
	router.HandleFunc("/sphere/nearest", s.nearestHandler).Methods(http.MethodGet)
	router.HandleFunc("/stars", s.starsHandler).Methods(http.MethodGet)
	router.HandleFunc("/stars", s.clearStarsHandler).Methods(http.MethodDelete)
	router.HandleFunc("/spin", s.spinHandler).Methods(http.MethodPost)
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	return router
}

// meshJSON is what the client needs to draw a mesh.
type meshJSON struct {
	*halfedge.Buffers
	Model      [16]float32 `json:"model"`
	IndexCount int         `json:"index_count"`
}

func newMeshJSON(m *halfedge.Mesh) *meshJSON {
	return &meshJSON{
		Buffers:    m.ExportBuffers(),
		Model:      m.ModelArray(),
		IndexCount: m.IndexCount(),
	}
}

// statusFromError maps the errors of the topology package to HTTP codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, halfedge.ErrUnknownMesh):
		return http.StatusNotFound
	case errors.Is(err, halfedge.ErrInvalidVertex):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(res http.ResponseWriter, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	res.Header().Set("Content-Length", strconv.Itoa(len(data)))
	res.Write(data)
}

func (s *server) meshesHandler(res http.ResponseWriter, req *http.Request) {
	writeJSON(res, s.scene.Names())
}

func (s *server) buffersHandler(res http.ResponseWriter, req *http.Request) {
	m, err := s.scene.Mesh(mux.Vars(req)["name"])
	if err != nil {
		http.Error(res, err.Error(), statusFromError(err))
		return
	}
	writeJSON(res, newMeshJSON(m))
}

func (s *server) topologyHandler(res http.ResponseWriter, req *http.Request) {
	m, err := s.scene.Mesh(mux.Vars(req)["name"])
	if err != nil {
		http.Error(res, err.Error(), statusFromError(err))
		return
	}

	// GZIP the data.
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	if _, err := m.WriteTo(w); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := w.Close(); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	// Set the headers and write the data.
	data := b.Bytes()
	res.Header().Set("Content-Type", "application/octet-stream")
	res.Header().Set("Content-Encoding", "gzip")
	res.Header().Set("Content-Length", strconv.Itoa(len(data)))
	res.Write(data)
}

func (s *server) addStarHandler(res http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	v, err := strconv.Atoi(vars["v"])
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	star, err := s.scene.AddStar(vars["name"], v)
	if errors.Is(err, halfedge.ErrUnresolvedVertex) {
		// No derived mesh, nothing to report.
		log.Println(err)
		res.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		http.Error(res, err.Error(), statusFromError(err))
		return
	}
	writeJSON(res, newMeshJSON(star))
}

func (s *server) starPreviewHandler(res http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	v, err := strconv.Atoi(vars["v"])
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	m, err := s.scene.Mesh(vars["name"])
	if err != nil {
		http.Error(res, err.Error(), statusFromError(err))
		return
	}
	star, err := m.Star(v)
	if errors.Is(err, halfedge.ErrUnresolvedVertex) {
		res.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		http.Error(res, err.Error(), statusFromError(err))
		return
	}

	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, star.Preview(previewSize)); err != nil {
		log.Println("unable to encode image.")
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "image/png")
	res.Header().Set("Content-Length", strconv.Itoa(len(buffer.Bytes())))
	if _, err := res.Write(buffer.Bytes()); err != nil {
		log.Println("unable to write image.")
	}
}

func (s *server) nearestHandler(res http.ResponseWriter, req *http.Request) {
	if s.sphere == nil {
		http.Error(res, "no sphere generated", http.StatusNotFound)
		return
	}
	lat, err := strconv.ParseFloat(req.URL.Query().Get("lat"), 64)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(req.URL.Query().Get("lon"), 64)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(res, map[string]int{"vertex": s.sphere.NearestVertex(lat, lon)})
}

func (s *server) starsHandler(res http.ResponseWriter, req *http.Request) {
	stars := s.scene.Stars()
	out := make([]*meshJSON, 0, len(stars))
	for _, m := range stars {
		out = append(out, newMeshJSON(m))
	}
	writeJSON(res, out)
}

func (s *server) clearStarsHandler(res http.ResponseWriter, req *http.Request) {
	s.scene.ClearStars()
	res.WriteHeader(http.StatusNoContent)
}

func (s *server) spinHandler(res http.ResponseWriter, req *http.Request) {
	// get the url parameter 'delta'.
	d := req.URL.Query().Get("delta")
	if d == "" {
		d = "0.005"
	}
	delta, err := strconv.ParseFloat(d, 64)
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	s.scene.Spin(delta)
	res.WriteHeader(http.StatusNoContent)
}
