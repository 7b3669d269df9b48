package osm2geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const (
	earthRadius = 6370.986884258304
	pi180       = math.Pi / 180.0
)

// GeoPoint representation of point on Earth
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String returns pretty printed value for for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

// Point returns orb representation (X == Lon, Y == Lat)
func (gp GeoPoint) Point() orb.Point {
	return orb.Point{gp.Lon, gp.Lat}
}

// degreesToRadians deg = r * pi / 180
func degreesToRadians(d float64) float64 {
	return d * pi180
}

// greatCircleDistance returns distance between two geo-points (kilometers)
func greatCircleDistance(p, q GeoPoint) float64 {
	lat1 := degreesToRadians(p.Lat)
	lon1 := degreesToRadians(p.Lon)
	lat2 := degreesToRadians(q.Lat)
	lon2 := degreesToRadians(q.Lon)
	diffLat := lat2 - lat1
	diffLon := lon2 - lon1
	a := math.Pow(math.Sin(diffLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(diffLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	ans := c * earthRadius
	return ans
}

// getSphericalLength returns length for given line (kilometers)
func getSphericalLength(line []GeoPoint) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += greatCircleDistance(line[i-1], line[i])
	}
	return totalLength
}

// Check if two lines intersects and returns intersections Point
// p1, p2 - first line
// p3, p4 - second line
// Note: Euclidean space
func intersect(p1, p2, p3, p4 orb.Point) (orb.Point, error) {
	// Calculate the coefficients of the linear equations
	a1 := p2[1] - p1[1]
	b1 := p1[0] - p2[0]
	c1 := a1*p1[0] + b1*p1[1]
	a2 := p4[1] - p3[1]
	b2 := p3[0] - p4[0]
	c2 := a2*p3[0] + b2*p3[1]

	// Calculate the determinant
	det := a1*b2 - a2*b1
	if math.Abs(det) < 1e-12 {
		return orb.Point{}, fmt.Errorf("The lines are parallel")
	}

	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	return orb.Point{x, y}, nil
}

// unitDirection returns normalized vector p -> q. Points must differ
func unitDirection(p, q orb.Point) orb.Point {
	vec := orb.Point{q[0] - p[0], q[1] - p[1]}
	vecLen := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1])
	return orb.Point{vec[0] / vecLen, vec[1] / vecLen}
}

// offsetCurve returns line shifted by distance to the left (positive distance) or to the right (negative distance)
//
// Output has exactly one vertex per input vertex: inner vertices are mitred joins of neighbouring offset segments.
// When lines are parallel or the miter is longer than miterLimit*|distance| the plain offset of the vertex is used.
// Consecutive points of the line must differ
func offsetCurve(line orb.LineString, distance, miterLimit float64) orb.LineString {
	segments := make([][2]orb.Point, 0, len(line)-1)
	for i := 1; i < len(line); i++ {
		p1 := line[i-1]
		p2 := line[i]
		vec := unitDirection(p1, p2)
		// Rotate the vector by 90 degrees and scale by the distance
		offset := orb.Point{-vec[1] * distance, vec[0] * distance}
		op1 := orb.Point{p1[0] + offset[0], p1[1] + offset[1]}
		op2 := orb.Point{p2[0] + offset[0], p2[1] + offset[1]}
		segments = append(segments, [2]orb.Point{op1, op2})
	}

	result := make(orb.LineString, 0, len(line))
	result = append(result, segments[0][0])
	maxMiter := miterLimit * math.Abs(distance)
	for i := 1; i < len(segments); i++ {
		seg1 := segments[i-1]
		seg2 := segments[i]
		intersection, err := intersect(seg1[0], seg1[1], seg2[0], seg2[1])
		if err != nil || findDist(intersection, line[i]) > maxMiter {
			result = append(result, seg2[0])
			continue
		}
		result = append(result, intersection)
	}
	result = append(result, segments[len(segments)-1][1])
	return result
}

func findDist(p1, p2 orb.Point) float64 {
	return math.Sqrt(math.Pow(p2.X()-p1.X(), 2) + math.Pow(p2.Y()-p1.Y(), 2))
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(pts []GeoPoint) []GeoPoint {
	inputLen := len(pts)
	output := make([]GeoPoint, inputLen)
	for i, n := range pts {
		j := inputLen - i - 1
		output[j] = n
	}
	return output
}

// copyLine returns copy of given line
func copyLine(pts []GeoPoint) []GeoPoint {
	output := make([]GeoPoint, len(pts))
	copy(output, pts)
	return output
}
