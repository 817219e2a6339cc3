//go:build !js_eval

package rule

// NewJSEvaluator is unavailable without the js_eval build tag.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = newEngineConfig(opts)
	return nil
}

// JSAvailable reports whether the goja engine was compiled in.
func JSAvailable() bool {
	return false
}
