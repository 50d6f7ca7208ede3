package venues

import (
	"fmt"

	"github.com/citynights/server/internal/domain/buckets"
	"github.com/citynights/server/internal/domain/cityconfig"
	"github.com/citynights/server/internal/slug"
)

// Codec transforms venue documents between client and storage shapes. It is
// stateless apart from the immutable city configuration table, so a single
// instance serves concurrent requests.
type Codec struct {
	cities *cityconfig.Table
}

func NewCodec(cities *cityconfig.Table) *Codec {
	return &Codec{cities: cities}
}

// Serialize turns a client payload (create or partial update) into its
// storage form.
//
// Fields absent from the payload never appear in the result, so a shallow
// merge downstream leaves stored values untouched; the only synthesized
// fields are queryText and priceClass, and only when their inputs are
// present.
func (c *Codec) Serialize(payload map[string]any) (map[string]any, error) {
	doc := deepCopyMap(payload)

	renameKey(doc, clientIDField, idField)

	location, _ := doc["location"].(map[string]any)

	var city *cityconfig.CityConfig
	if location != nil {
		country, hasCountry := stringValue(location, "country")
		cityName, hasCity := stringValue(location, "city")
		if hasCountry && hasCity {
			resolved, err := c.cities.Resolve(country, cityName)
			if err != nil {
				return nil, err
			}
			city = resolved
		}
	}

	if prices, ok := doc["prices"].(map[string]any); ok && city != nil {
		if class, ok := priceClass(prices, city); ok {
			doc["priceClass"] = class
		}
	}

	if location != nil {
		if coords, ok := location["coordinates"].(map[string]any); ok {
			lon, hasLon := numberValue(coords, "longitude")
			lat, hasLat := numberValue(coords, "latitude")
			if !hasLon || !hasLat {
				return nil, fmt.Errorf("coordinates require both longitude and latitude")
			}
			delete(location, "coordinates")
			// Storage encoding is GeoJSON: coordinate pair ordered
			// longitude-then-latitude.
			location["point"] = map[string]any{
				"type":        "Point",
				"coordinates": []any{lon, lat},
			}
		}
	}

	if _, ok := doc[queryTextField]; !ok {
		if name, ok := stringValue(doc, "name"); ok {
			doc[queryTextField] = slug.ToASCII(name)
		}
	}

	return doc, nil
}

// priceClass buckets each submitted beverage price into its 1-based class
// index and keeps the highest. A category whose price was not submitted, or
// whose price sits below the first boundary, is excluded from the comparison
// rather than dragging the class to zero.
func priceClass(prices map[string]any, city *cityconfig.CityConfig) (int, bool) {
	categories := []struct {
		key    string
		bounds []float64
	}{
		{"coke", city.CokePriceBounds},
		{"beer", city.BeerPriceBounds},
	}

	best := 0
	for _, category := range categories {
		price, ok := numberValue(prices, category.key)
		if !ok {
			continue
		}
		if class := buckets.ClassIndex(category.bounds, price); class > best {
			best = class
		}
	}
	return best, best > 0
}

// Deserialize turns a stored venue document into its client-facing shape.
// The input document is never mutated.
func (c *Codec) Deserialize(doc map[string]any) (map[string]any, error) {
	view := deepCopyMap(doc)

	renameKey(view, idField, clientIDField)
	delete(view, sourceIDField)
	delete(view, queryTextField)

	if images, ok := view["images"].([]any); ok {
		out := make([]any, 0, len(images))
		for _, img := range images {
			imgDoc, ok := img.(map[string]any)
			if !ok {
				out = append(out, img)
				continue
			}
			out = append(out, DeserializeImage(imgDoc))
		}
		view["images"] = out
	}

	location, _ := view["location"].(map[string]any)
	if location != nil {
		if point, ok := location["point"].(map[string]any); ok {
			lon, lat, err := pointCoordinates(point)
			if err != nil {
				return nil, err
			}
			delete(location, "point")
			location["coordinates"] = map[string]any{
				"longitude": lon,
				"latitude":  lat,
			}
		}
	}

	var city *cityconfig.CityConfig
	if location != nil {
		country, hasCountry := stringValue(location, "country")
		cityName, hasCity := stringValue(location, "city")
		if hasCountry && hasCity {
			// Every persisted venue with a location must resolve; a miss is a
			// data-integrity failure and propagates instead of producing
			// blank derived fields.
			resolved, err := c.cities.Resolve(country, cityName)
			if err != nil {
				return nil, err
			}
			city = resolved
		}
	}

	if capacity, ok := numberValue(view, "capacity"); ok {
		if bucket := buckets.Range(c.cities.CapacityBounds, capacity); bucket != nil {
			view["capacityRange"] = bucket.Pair()
		}
	}

	if fees, ok := view["fees"].(map[string]any); ok && city != nil {
		view["currency"] = city.Currency
		if entrance, ok := numberValue(fees, "entrance"); ok {
			if bucket := buckets.Range(city.EntranceFeeBounds, entrance); bucket != nil {
				view["entranceFeeRange"] = bucket.Pair()
			}
		}
	}

	return view, nil
}

// DeserializeImage produces the client view of an image document: the same
// snapshot-then-rename treatment the venue itself gets.
func DeserializeImage(doc map[string]any) map[string]any {
	view := deepCopyMap(doc)
	renameKey(view, idField, clientIDField)
	return view
}

func pointCoordinates(point map[string]any) (float64, float64, error) {
	coords, ok := point["coordinates"].([]any)
	if !ok || len(coords) != 2 {
		return 0, 0, fmt.Errorf("malformed geo point: want [longitude, latitude] pair")
	}
	lon, okLon := toFloat(coords[0])
	lat, okLat := toFloat(coords[1])
	if !okLon || !okLat {
		return 0, 0, fmt.Errorf("malformed geo point: non-numeric coordinates")
	}
	return lon, lat, nil
}
