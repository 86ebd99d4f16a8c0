package models

// All lists every entity owned by the placement domain, in migration order.
func All() []interface{} {
	return []interface{}{
		&Student{},
		&Internship{},
		&Application{},
		&Feedback{},
		&Recruiter{},
		&PerformanceRecord{},
	}
}
