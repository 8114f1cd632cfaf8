// Package tree implements ID3 decision trees over categorical attributes.
//
// Trees are grown greedily: each node splits on the attribute with the highest
// information gain and gets one child per value observed in its rows. Leaves
// predict the majority label of their rows.
//
//	clf := tree.NewID3Classifier()
//	if err := clf.Fit(X, y); err != nil {
//	    return err
//	}
//	preds, err := clf.Predict(X.Records())
package tree

import (
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
)

const modelName = "ID3Classifier"

// ID3Classifier is a categorical decision tree classifier. It is read-only
// after Fit and safe for concurrent prediction.
type ID3Classifier struct {
	state *model.StateManager

	// Hyperparameters
	attributeReuse bool // keep the split attribute available to children
	nJobs          int  // workers for gain evaluation, <= 0 means all CPUs

	// Fitted state
	root       *Node
	attributes []string
	classes    []string

	id     string
	base   log.Logger // logger before instance fields are attached
	logger log.Logger
}

// Option is a functional option for ID3Classifier.
type Option func(*ID3Classifier)

// WithAttributeReuse keeps the attribute a node splits on available to its
// descendants, so it may be selected again further down. By default it is
// removed once used.
func WithAttributeReuse(reuse bool) Option {
	return func(c *ID3Classifier) {
		c.attributeReuse = reuse
	}
}

// WithNJobs sets the number of goroutines that evaluate attribute gains at
// each node. n <= 0 uses every CPU. The fitted tree does not depend on n.
func WithNJobs(n int) Option {
	return func(c *ID3Classifier) {
		c.nJobs = n
	}
}

// WithLogger replaces the package logger.
func WithLogger(logger log.Logger) Option {
	return func(c *ID3Classifier) {
		c.base = logger
	}
}

// NewID3Classifier creates an unfitted ID3Classifier.
func NewID3Classifier(opts ...Option) *ID3Classifier {
	c := &ID3Classifier{
		state: model.NewStateManager(),
		nJobs: 1,
		id:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.attachLogger()
	return c
}

func (c *ID3Classifier) attachLogger() {
	if c.base == nil {
		c.base = log.GetLoggerWithName("tree.id3")
	}
	c.logger = c.base.With(log.ModelNameKey, modelName, log.EstimatorIDKey, c.id)
}

// Fit grows the tree from the categorical features X and the labels y. It
// fails with an InvalidInputError when len(y) differs from the number of rows
// or there are no rows. Calling Fit again replaces the previous tree.
func (c *ID3Classifier) Fit(X *dataset.Frame, y []string) (err error) {
	defer errors.Recover(&err, "ID3Classifier.Fit")

	view, err := dataset.NewView(X, y)
	if err != nil {
		return err
	}
	c.state.Reset()

	start := time.Now()
	c.logger.Info("Training ID3Classifier",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, view.RowCount(),
		log.FeaturesKey, len(X.Columns),
		"attribute_reuse", c.attributeReuse,
		log.WorkersKey, c.nJobs,
	)

	b := &builder{reuse: c.attributeReuse, workers: c.nJobs, logger: c.logger}
	root, err := b.build(view, "", "", 0)
	if err != nil {
		return err
	}

	c.root = root
	c.attributes = append([]string(nil), X.Columns...)
	c.classes = view.DistinctLabels()
	c.state.SetDimensions(len(X.Columns), view.RowCount())
	c.state.SetFitted()

	c.logger.Info("Training completed",
		log.DepthKey, root.Depth(),
		log.NodesKey, root.NodeCount(),
		log.LeavesKey, root.LeafCount(),
		log.ClassesKey, len(c.classes),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Root returns the root of the fitted tree, or nil before Fit.
func (c *ID3Classifier) Root() *Node {
	return c.root
}

// Attributes returns the attribute names the model was trained on.
func (c *ID3Classifier) Attributes() []string {
	return append([]string(nil), c.attributes...)
}

// Classes returns the labels seen during fitting in order of first occurrence.
func (c *ID3Classifier) Classes() []string {
	return append([]string(nil), c.classes...)
}

// Depth returns the depth of the fitted tree. A single leaf has depth 0.
func (c *ID3Classifier) Depth() (int, error) {
	if err := c.state.RequireFitted(modelName, "Depth"); err != nil {
		return 0, err
	}
	return c.root.Depth(), nil
}

// IsFitted reports whether Fit has completed.
func (c *ID3Classifier) IsFitted() bool {
	return c.state.IsFitted()
}

// ID returns the estimator instance id used in log records.
func (c *ID3Classifier) ID() string {
	return c.id
}

// GetParams returns the hyperparameters.
func (c *ID3Classifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"attribute_reuse": c.attributeReuse,
		"n_jobs":          c.nJobs,
	}
}

type builder struct {
	reuse   bool
	workers int
	logger  log.Logger
}

// build grows the subtree for view. A node becomes a leaf when its rows share
// one label or when no attributes remain; otherwise it splits on the best
// attribute. With attribute reuse the node also becomes a leaf when the best
// attribute takes a single value in view.
func (b *builder) build(view *dataset.View, edgeAttr, edgeValue string, depth int) (*Node, error) {
	node := &Node{
		EdgeAttribute: edgeAttr,
		EdgeValue:     edgeValue,
		Samples:       view.RowCount(),
		Entropy:       Entropy(view),
		ClassCounts:   view.LabelCounts(),
		Class:         view.MajorityLabel(),
	}

	if len(view.DistinctLabels()) == 1 || len(view.Attributes()) == 0 {
		node.Leaf = true
		return node, nil
	}

	best, gain, err := BestAttribute(view, b.workers)
	if err != nil {
		return nil, err
	}
	// With attribute reuse an attribute already split on above is constant
	// here and may still win a zero-gain tie; splitting on it would not
	// shrink the view. Without reuse the child drops it, so a one-value
	// split still makes progress.
	values := view.DistinctValues(best)
	if b.reuse && len(values) < 2 {
		node.Leaf = true
		return node, nil
	}

	node.Attribute = best
	node.Gain = gain
	node.Values = values
	node.Children = make(map[string]*Node, len(values))

	b.logger.Debug("Splitting node",
		log.AttributeKey, best,
		log.GainKey, gain,
		log.DepthKey, depth,
		log.SamplesKey, node.Samples,
		log.ChildrenKey, len(values),
	)

	for _, v := range values {
		child := view.Filter(best, v)
		if !b.reuse {
			child = child.Drop(best)
		}
		sub, err := b.build(child, best, v, depth+1)
		if err != nil {
			return nil, err
		}
		node.Children[v] = sub
	}
	return node, nil
}
