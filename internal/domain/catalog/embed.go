package catalog

import (
	_ "embed"
	"encoding/json"

	"github.com/go-faster/errors"
)

//go:embed catalog.json
var rawCatalog []byte

// Load parses the embedded catalog document into a StaticRepository.
func Load() (*StaticRepository, error) {
	var products []Product
	if err := json.Unmarshal(rawCatalog, &products); err != nil {
		return nil, errors.Wrap(err, "parse embedded catalog")
	}
	if len(products) == 0 {
		return nil, errors.New("embedded catalog is empty")
	}
	return NewStaticRepository(products), nil
}
