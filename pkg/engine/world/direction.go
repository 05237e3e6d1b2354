package world

// Dir4 represents a cardinal direction
type Dir4 int

// Dir4 constants
const (
	North Dir4 = iota
	East
	South
	West
)

// AllDir4 returns all valid cardinal directions for iteration
func AllDir4() []Dir4 {
	return []Dir4{North, East, South, West}
}

// String returns the string representation of a direction
func (d Dir4) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Dir4) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Dir4) Opposite() Dir4 {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction (y grows downward)
func (d Dir4) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Vertical returns true for North and South
func (d Dir4) Vertical() bool {
	return d == North || d == South
}

// ToDir8 converts to the equivalent eight-way direction
func (d Dir4) ToDir8() Dir8 {
	switch d {
	case North:
		return Dir8North
	case East:
		return Dir8East
	case South:
		return Dir8South
	case West:
		return Dir8West
	default:
		return Dir8None
	}
}

// Dir8 is an eight-way direction, clockwise from north
type Dir8 int

// Dir8 constants
const (
	Dir8None Dir8 = iota - 1
	Dir8North
	Dir8NorthEast
	Dir8East
	Dir8SouthEast
	Dir8South
	Dir8SouthWest
	Dir8West
	Dir8NorthWest
)

// AllDir8 returns the eight directions clockwise from north
func AllDir8() []Dir8 {
	return []Dir8{Dir8North, Dir8NorthEast, Dir8East, Dir8SouthEast, Dir8South, Dir8SouthWest, Dir8West, Dir8NorthWest}
}

// IsValid returns true for the eight real directions
func (d Dir8) IsValid() bool {
	return d >= Dir8North && d <= Dir8NorthWest
}

// Delta returns the x and y offsets for this direction
func (d Dir8) Delta() (dx, dy int) {
	switch d {
	case Dir8North:
		return 0, -1
	case Dir8NorthEast:
		return 1, -1
	case Dir8East:
		return 1, 0
	case Dir8SouthEast:
		return 1, 1
	case Dir8South:
		return 0, 1
	case Dir8SouthWest:
		return -1, 1
	case Dir8West:
		return -1, 0
	case Dir8NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

// Opposite returns the direction pointing the other way
func (d Dir8) Opposite() Dir8 {
	if !d.IsValid() {
		return d
	}
	return (d + 4) % 8
}

// Rotate turns the direction clockwise by n eighth turns; negative n turns
// counter-clockwise
func (d Dir8) Rotate(n int) Dir8 {
	if !d.IsValid() {
		return d
	}
	return Dir8(((int(d)+n)%8 + 8) % 8)
}

// Diagonal returns true for the four corner directions
func (d Dir8) Diagonal() bool {
	return d.IsValid() && d%2 == 1
}

// String returns the string representation of a direction
func (d Dir8) String() string {
	switch d {
	case Dir8North:
		return "North"
	case Dir8NorthEast:
		return "NorthEast"
	case Dir8East:
		return "East"
	case Dir8SouthEast:
		return "SouthEast"
	case Dir8South:
		return "South"
	case Dir8SouthWest:
		return "SouthWest"
	case Dir8West:
		return "West"
	case Dir8NorthWest:
		return "NorthWest"
	default:
		return "None"
	}
}
