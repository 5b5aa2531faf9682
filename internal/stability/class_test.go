package stability

import "testing"

func TestClassifyClass_Utility(t *testing.T) {
	v := DefaultVocabulary()
	utility := []string{
		"p-4", "mt-2", "flex", "hidden", "bg-red-500", "text-sm",
		"sm:flex", "md:hover:bg-blue-500", "dark:text-white",
		"w-[200px]", "w-1/2", "-mt-4", "z-10",
		"col-md-6", "btn-primary", "d-flex",
		"a", "1", "123",
	}
	for _, c := range utility {
		if got := v.ClassifyClass(c); got != ClassUtility {
			t.Errorf("ClassifyClass(%q) = %s, want utility", c, got)
		}
	}
}

func TestClassifyClass_Dynamic(t *testing.T) {
	v := DefaultVocabulary()
	dynamic := []string{
		"sc-bdVaJa", "css-1x2y3z4A", "emotion-cache-1ff8gp5",
		"Mui-selected1A",
	}
	for _, c := range dynamic {
		if got := v.ClassifyClass(c); got != ClassDynamic {
			t.Errorf("ClassifyClass(%q) = %s, want dynamic", c, got)
		}
	}
}

func TestClassifyClass_Semantic(t *testing.T) {
	v := DefaultVocabulary()
	semantic := []string{
		"login-form", "nav-primary", "card-header", "product-list",
	}
	for _, c := range semantic {
		if got := v.ClassifyClass(c); got != ClassSemantic {
			t.Errorf("ClassifyClass(%q) = %s, want semantic", c, got)
		}
		if !v.IsStableClass(c) {
			t.Errorf("expected %q to be stable", c)
		}
	}
}

func TestClassifyClass_UtilityNeverSemantic(t *testing.T) {
	v := DefaultVocabulary()
	if v.IsStableClass("flex") {
		t.Error("a utility class must never be judged stable/semantic")
	}
}

func TestClassifyClass_DynamicNeverStable(t *testing.T) {
	v := DefaultVocabulary()
	if v.IsStableClass("sc-bdVaJa") {
		t.Error("a dynamic class must never be judged stable")
	}
}
