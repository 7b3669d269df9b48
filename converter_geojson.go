package osm2geo

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

func pointsToCoordinates(pts []GeoPoint) [][]float64 {
	pts2d := make([][]float64, len(pts))
	for i := range pts {
		pts2d[i] = []float64{pts[i].Lon, pts[i].Lat}
	}
	return pts2d
}

func polygonToCoordinates(polygon Polygon) [][][]float64 {
	ring := polygon.Ring()
	pts2d := make([][]float64, len(ring))
	for i := range ring {
		pts2d[i] = []float64{ring[i].X(), ring[i].Y()}
	}
	return [][][]float64{pts2d}
}

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(pts []GeoPoint) string {
	b, err := geojson.NewLineStringGeometry(pointsToCoordinates(pts)).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt GeoPoint) string {
	b, err := geojson.NewPointGeometry([]float64{pt.Lon, pt.Lat}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPolygon returns GeoJSON representation of closed Polygon
func PrepareGeoJSONPolygon(polygon Polygon) string {
	b, err := geojson.NewPolygonGeometry(polygonToCoordinates(polygon)).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PathsFeatureCollection returns one LineString feature per path
func PathsFeatureCollection(paths *PathSet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, path := range paths.Paths() {
		feature := geojson.NewLineStringFeature(pointsToCoordinates(path.Points))
		feature.ID = path.Key()
		feature.SetProperty("osm_way_id", path.WayID)
		feature.SetProperty("name", path.Name)
		feature.SetProperty("highway", path.Highway.String())
		feature.SetProperty("oneway", path.OneWay)
		feature.SetProperty("source_node", path.SourceNodeID)
		feature.SetProperty("target_node", path.TargetNodeID)
		fc.AddFeature(feature)
	}
	return fc
}

// PolygonsFeatureCollection returns one Polygon feature per polygon key
func PolygonsFeatureCollection(polygons *PolygonSet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, key := range polygons.Keys() {
		feature := geojson.NewPolygonFeature(polygonToCoordinates(polygons.Get(key)))
		feature.ID = key
		feature.SetProperty("segment_key", SegmentKey(key))
		fc.AddFeature(feature)
	}
	return fc
}
