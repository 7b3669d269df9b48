package osm2geo

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthR = 20037508.34
)

func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

func epsg3857To4326(x, y float64) (float64, float64) {
	lon := x * 180 / earthR
	lat := math.Atan(math.Exp(y*math.Pi/earthR))*360/math.Pi - 90
	return lon, lat
}

func pointToEuclidean(pt GeoPoint) orb.Point {
	euclideanX, euclideanY := epsg4326To3857(pt.Lon, pt.Lat)
	return orb.Point{euclideanX, euclideanY}
}

func pointFromEuclidean(pt orb.Point) GeoPoint {
	lon, lat := epsg3857To4326(pt.X(), pt.Y())
	return GeoPoint{Lat: lat, Lon: lon}
}

// lineToEuclidean projects line to EPSG:3857 dropping consecutive duplicates
func lineToEuclidean(line []GeoPoint) orb.LineString {
	newLine := make(orb.LineString, 0, len(line))
	for _, pt := range line {
		projected := pointToEuclidean(pt)
		if len(newLine) > 0 && newLine[len(newLine)-1].Equal(projected) {
			continue
		}
		newLine = append(newLine, projected)
	}
	return newLine
}

// mercatorScale returns how many EPSG:3857 units correspond to one ground meter at given latitude
func mercatorScale(lat float64) float64 {
	return 1.0 / math.Cos(degreesToRadians(lat))
}
