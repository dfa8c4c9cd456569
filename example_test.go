package llamavec_test

import (
	"fmt"
	"log"

	"github.com/llamavec/llamavec"
	"github.com/llamavec/llamavec/metadata"
)

func ExampleStore_Search() {
	store, err := llamavec.New(3)
	if err != nil {
		log.Fatal(err)
	}

	ids := []string{"vec1", "vec2", "vec3", "vec4"}
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.7, 0.7, 0},
	}
	metadatas := []metadata.Metadata{
		{"cat": "basis"},
		{"cat": "basis"},
		{"cat": "basis"},
		{"cat": "diagonal"},
	}
	if err := store.AddBatch(ids, vectors, metadatas); err != nil {
		log.Fatal(err)
	}

	results, err := store.Search([]float32{0.9, 0.1, 0.1}, 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		fmt.Println(r.ID, r.Metadata["cat"])
	}
	// Output:
	// vec1 basis
	// vec4 diagonal
}

func ExampleStore_Search_filtered() {
	store, err := llamavec.New(2)
	if err != nil {
		log.Fatal(err)
	}

	_ = store.Add("a", []float32{1, 0}, metadata.Metadata{"lang": "en"})
	_ = store.Add("b", []float32{0.9, 0.1}, metadata.Metadata{"lang": "de"})

	results, err := store.Search([]float32{1, 0}, 5,
		llamavec.WithFilters(metadata.Eq("lang", "de")),
	)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		fmt.Println(r.ID)
	}
	// Output:
	// b
}
