// Package id3tree grows categorical decision trees with the ID3 algorithm and
// serves them from Go programs, the command line and HTTP.
//
// A tree is grown from a frame of categorical attributes and a label per row.
// At every node the attribute with the highest information gain is chosen and
// one child is created per value it takes among the node's rows. Growth stops
// when a node's rows share one label or no attribute is left to split on.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/id3tree/dataset"
//	    "github.com/YuminosukeSato/id3tree/sklearn/tree"
//	)
//
//	func main() {
//	    f, err := dataset.ReadCSVFile("weather.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    X, y, err := f.Pop("Play")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := tree.NewID3Classifier()
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(clf)
//
//	    p, err := clf.PredictRecord(dataset.Record{
//	        "Outlook": "Sunny", "Temperature": "Cool", "Humidity": "High", "Wind": "Strong",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Play:", p.Label)
//	}
//
// # Packages
//
//   - dataset: frames, CSV and SQL loading, and the row views the tree is grown on
//   - sklearn/tree: entropy, information gain, the ID3 classifier and its exports
//   - preprocessing: binning of numeric columns and train/test splitting
//   - metrics: accuracy and confusion matrices
//   - visualize: information gain bar charts
//   - server: an HTTP prediction service
//   - core/model: estimator interfaces, fitted state and gob persistence
//   - core/parallel: worker helpers used for gain evaluation
//   - pkg/errors, pkg/log: structured errors and zerolog based logging
//
// # Attribute reuse
//
// By default an attribute is removed from the candidates of every node below
// the node that split on it. With tree.WithAttributeReuse(true) it stays a
// candidate; a node whose best attribute has a single value in its rows then
// becomes a majority leaf.
//
// # Command line
//
// cmd/id3tree grows trees from a YAML config, tests them, predicts with them
// and serves them:
//
//	id3tree grow -c weather.yaml -o weather.gob --print
//	id3tree test -m weather.gob -i holdout.csv
//	id3tree predict -m weather.gob -i new.csv -o predictions.csv
//	id3tree serve -m weather.gob --addr :8080
package id3tree
