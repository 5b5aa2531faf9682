package stability

import "go.uber.org/zap"

// Classifier is the stability-classification layer of §4.1: a pure decision
// component over a Vocabulary. It carries no mutable state — callers may
// share one instance freely, including across the resolver and generator.
type Classifier struct {
	vocab  Vocabulary
	logger *zap.Logger
}

// New builds a Classifier over vocab. A nil logger is replaced with a no-op
// logger; the core never requires a logger to function.
func New(vocab Vocabulary, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{vocab: vocab, logger: logger}
}

// Default returns a Classifier over the built-in Vocabulary.
func Default() *Classifier {
	return New(DefaultVocabulary(), nil)
}

func (c *Classifier) Vocabulary() Vocabulary { return c.vocab }

func (c *Classifier) IsStableIdentifier(id string) bool {
	return c.vocab.IsStableIdentifier(id)
}

func (c *Classifier) IsDynamicIdentifier(id string) bool {
	return c.vocab.IsDynamicIdentifier(id)
}

func (c *Classifier) IsDynamicToken(tok string) bool {
	return c.vocab.IsDynamicToken(tok)
}

func (c *Classifier) ClassifyClass(name string) ClassCategory {
	return c.vocab.ClassifyClass(name)
}

func (c *Classifier) IsStableClass(name string) bool {
	return c.vocab.IsStableClass(name)
}

func (c *Classifier) IsStableAttribute(name, value string) bool {
	ok := c.vocab.IsStableAttribute(name, value)
	if !ok {
		c.logger.Debug("attribute rejected by stability classifier", zap.String("name", name))
	}
	return ok
}

func (c *Classifier) IsReferenceBearingAttribute(name string) bool {
	return c.vocab.IsReferenceBearingAttribute(name)
}

func (c *Classifier) IsURLValuedAttribute(name string) bool {
	return c.vocab.IsURLValuedAttribute(name)
}

func (c *Classifier) CleanURLValue(value, sameOriginBase string) string {
	return c.vocab.CleanURLValue(value, sameOriginBase)
}
