package halfedge

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// Scene holds the loaded meshes by name and the star meshes derived from
// them.
type Scene struct {
	mu     sync.RWMutex
	meshes map[string]*Mesh
	stars  []*Mesh
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{
		meshes: make(map[string]*Mesh),
	}
}

// AddMesh adds (or replaces) the mesh with the given name.
func (s *Scene) AddMesh(name string, m *Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshes[name] = m
}

// Mesh returns a snapshot of the mesh with the given name. The topology is
// shared, the placement is a copy.
func (s *Scene) Mesh(name string) (*Mesh, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meshes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMesh, name)
	}
	c := *m
	return &c, nil
}

// Names returns the sorted names of all meshes.
func (s *Scene) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.meshes))
	for name := range s.meshes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddStar extracts the star of vertex v of the named mesh and adds it to the
// scene with the mesh's current placement.
func (s *Scene) AddStar(name string, v int) (*Mesh, error) {
	m, err := s.Mesh(name)
	if err != nil {
		return nil, err
	}
	star, err := m.StarMesh(v)
	if err != nil {
		return nil, err
	}
	log.Printf("star of %s vertex %d: %d neighbors", name, v, star.NumVertices()-1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stars = append(s.stars, star)
	c := *star
	return &c, nil
}

// Stars returns snapshots of the star meshes in the order they were added.
func (s *Scene) Stars() []*Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stars := make([]*Mesh, 0, len(s.stars))
	for _, m := range s.stars {
		c := *m
		stars = append(stars, &c)
	}
	return stars
}

// ClearStars removes all star meshes, keeping the loaded meshes.
func (s *Scene) ClearStars() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stars = nil
}

// Spin advances the rotation angle of every mesh and star by delta.
func (s *Scene) Spin(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.meshes {
		m.Angle += delta
	}
	for _, m := range s.stars {
		m.Angle += delta
	}
}
