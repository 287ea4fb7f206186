// Package domain holds the closed enumerations shared across bounded contexts:
// business sectors, task statuses and priorities, and sector-entity statuses.
package domain

// Sector partitions users, leads and tasks into independent business units.
// Task assignment never crosses sector boundaries.
type Sector string

const (
	SectorDigizign   Sector = "DIGIZIGN"
	SectorZurelabs   Sector = "ZURELABS"
	SectorInternzity Sector = "INTERNZITY"
	SectorUnizeek    Sector = "UNIZEEK"
)

// Sectors returns all valid sectors in declaration order.
func Sectors() []Sector {
	return []Sector{SectorDigizign, SectorZurelabs, SectorInternzity, SectorUnizeek}
}

// ParseSector validates a raw string against the closed sector set.
func ParseSector(raw string) (Sector, bool) {
	switch Sector(raw) {
	case SectorDigizign, SectorZurelabs, SectorInternzity, SectorUnizeek:
		return Sector(raw), true
	}
	return "", false
}

// Valid reports whether the sector is a member of the closed set.
func (s Sector) Valid() bool {
	_, ok := ParseSector(string(s))
	return ok
}

func (s Sector) String() string {
	return string(s)
}
