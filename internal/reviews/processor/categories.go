package processor

// Category is a business category and the rating fields its reviews carry.
type Category struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Fields      []string `json:"fields"`
}

var categories = []Category{
	{Name: "medical", DisplayName: "Medical Services / Dentistry", Fields: []string{"staff_professionalism", "waiting_time", "treatment_quality"}},
	{Name: "beauty", DisplayName: "Beauty Industry / Salon / Barbershop", Fields: []string{"result_quality", "hygiene", "atmosphere"}},
	{Name: "retail", DisplayName: "Retail Store (Offline)", Fields: []string{"product_selection", "staff_helpfulness", "store_cleanliness"}},
	{Name: "ecommerce", DisplayName: "Online Store (E-commerce)", Fields: []string{"product_quality", "delivery_speed", "packaging"}},
	{Name: "hotel", DisplayName: "Hotel / Apartments / Guesthouse", Fields: []string{"room_cleanliness", "location", "value_for_money"}},
	{Name: "auto_service", DisplayName: "Auto Service / Car Wash / Tire Shop", Fields: []string{"work_quality", "turnaround_time", "price_transparency"}},
	{Name: "car_dealership", DisplayName: "Car Dealership / Auto Sales", Fields: []string{"sales_advice", "vehicle_condition", "paperwork"}},
	{Name: "education", DisplayName: "Education / Courses / Online School", Fields: []string{"teaching_quality", "course_materials", "organization"}},
	{Name: "tourism", DisplayName: "Tourism / Travel Agency / Excursions", Fields: []string{"itinerary", "guide_quality", "value_for_money"}},
	{Name: "renovation", DisplayName: "Renovation / Construction / Finishing", Fields: []string{"work_quality", "deadline_keeping", "cleanliness"}},
	{Name: "it_services", DisplayName: "IT Services / Development / Support", Fields: []string{"technical_quality", "responsiveness", "deadline_keeping"}},
	{Name: "logistics", DisplayName: "Logistics / Delivery / Courier Service", Fields: []string{"delivery_speed", "parcel_condition", "courier_behavior"}},
	{Name: "real_estate", DisplayName: "Real Estate / Agency / Rental", Fields: []string{"agent_expertise", "responsiveness", "transparency"}},
	{Name: "household", DisplayName: "Household Services / Cleaning / Appliance Repair", Fields: []string{"work_quality", "punctuality", "price_fairness"}},
	{Name: "veterinary", DisplayName: "Veterinary / Grooming / Pet Care", Fields: []string{"animal_handling", "expertise", "facility_cleanliness"}},
	{Name: "financial", DisplayName: "Financial / Insurance / Legal Services", Fields: []string{"expertise", "clarity", "responsiveness"}},
	{Name: "wellness", DisplayName: "Health & Wellness (Fitness, Massage, Spa)", Fields: []string{"instructor_quality", "facility_cleanliness", "atmosphere"}},
	{Name: "photography", DisplayName: "Photography / Video Production", Fields: []string{"result_quality", "creativity", "delivery_time"}},
	{Name: "furniture", DisplayName: "Furniture / Interior Design", Fields: []string{"product_quality", "design_advice", "assembly"}},
	{Name: "telecom", DisplayName: "Telecommunications / Internet Providers", Fields: []string{"connection_quality", "customer_support", "billing_clarity"}},
}

var categoryIndex = func() map[string]Category {
	index := make(map[string]Category, len(categories))
	for _, c := range categories {
		index[c.Name] = c
	}
	return index
}()

// Categories returns the catalog in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory finds a category by its name. A nil or unknown name has no
// category-specific fields.
func LookupCategory(name *string) (Category, bool) {
	if name == nil {
		return Category{}, false
	}
	c, ok := categoryIndex[*name]
	return c, ok
}

func (c Category) declares(field string) bool {
	for _, f := range c.Fields {
		if f == field {
			return true
		}
	}
	return false
}
