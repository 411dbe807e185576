package models

// ProjectFilter narrows a project listing. Nil fields do not filter.
type ProjectFilter struct {
	Category *string
	Featured *bool
}

type BlogPostFilter struct {
	Category  *string
	Published *bool
}

type TestimonialFilter struct {
	Featured *bool
}

// Matches reports whether p passes the filter.
func (f ProjectFilter) Matches(p Project) bool {
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	return true
}

func (f BlogPostFilter) Matches(b BlogPost) bool {
	if f.Category != nil && b.Category != *f.Category {
		return false
	}
	if f.Published != nil && b.Published != *f.Published {
		return false
	}
	return true
}

func (f TestimonialFilter) Matches(t Testimonial) bool {
	return f.Featured == nil || t.Featured == *f.Featured
}
