package sim

// AnimalState is one bird's state captured in a Snapshot.
type AnimalState struct {
	Position  Vec2
	Rotation  float32
	Speed     float32
	Vision    []float32
	FoodEaten int
}

// Snapshot is a detached copy of one frame of the world. A caller driving
// the Simulation on its own goroutine can hand these to a renderer without
// exposing live state.
type Snapshot struct {
	Animals    []AnimalState
	Foods      []Vec2
	Generation int
	Age        int
}

// Snapshot copies the current frame state.
func (s *Simulation) Snapshot() Snapshot {
	animals := s.world.Animals()
	foods := s.world.Foods()

	snap := Snapshot{
		Animals:    make([]AnimalState, len(animals)),
		Foods:      make([]Vec2, len(foods)),
		Generation: s.generation,
		Age:        s.age,
	}

	for i := range animals {
		a := &animals[i]
		vision := make([]float32, len(a.Vision()))
		copy(vision, a.Vision())
		snap.Animals[i] = AnimalState{
			Position:  a.Position(),
			Rotation:  a.Rotation(),
			Speed:     a.Speed(),
			Vision:    vision,
			FoodEaten: a.FoodEaten(),
		}
	}
	for i := range foods {
		snap.Foods[i] = foods[i].Position()
	}

	return snap
}
