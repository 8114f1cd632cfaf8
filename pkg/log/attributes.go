package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "ID3Classifier".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one estimator instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey is the operation being performed: "fit", "predict", ...
	OperationKey = "ml.operation"

	// ComponentKey is the package or subsystem emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: "training", "inference", ...
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	ClassesKey  = "data.classes"
	SourceKey   = "data.source"
)

// Tree structure.
const (
	// AttributeKey is the attribute a node splits on or a record is missing.
	AttributeKey = "tree.attribute"

	// ValueKey is a categorical value of AttributeKey.
	ValueKey = "tree.value"

	// GainKey is the information gain of a split, in bits.
	GainKey = "tree.gain"

	// EntropyKey is the label entropy of a node, in bits.
	EntropyKey = "tree.entropy"

	// DepthKey is the depth of a node, or of the whole tree.
	DepthKey = "tree.depth"

	// NodesKey is the number of nodes in a tree.
	NodesKey = "tree.nodes"

	// LeavesKey is the number of leaves in a tree.
	LeavesKey = "tree.leaves"

	// ChildrenKey is the number of children created by a split.
	ChildrenKey = "tree.children"
)

// Performance and evaluation.
const (
	DurationMsKey = "perf.duration_ms"
	AccuracyKey   = "metrics.accuracy"
	WorkersKey    = "perf.workers"
)

// Prediction context.
const (
	// PredsKey is the number of predictions made.
	PredsKey = "preds.count"

	// FallbacksKey is the number of predictions that used the unseen-category
	// fallback.
	FallbacksKey = "preds.fallbacks"

	// RecordKey is the index of a record in a prediction batch.
	RecordKey = "preds.record"

	// LabelKey is a predicted label.
	LabelKey = "preds.label"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	ErrorTypeKey  = "error.type"
	StacktraceKey = "error.stacktrace"
)

// Standard values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationLoad    = "load"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted      = "NOT_FITTED"
	ErrorEmptyData      = "EMPTY_DATA"
	ErrorInvalidInput   = "INVALID_INPUT"
	ErrorSchemaMismatch = "SCHEMA_MISMATCH"
	ErrorUnseenCategory = "UNSEEN_CATEGORY"
)
