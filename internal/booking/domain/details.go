package domain

// DetailType discriminates the booking detail payload.
type DetailType string

const (
	DetailHotel      DetailType = "hotel"
	DetailRestaurant DetailType = "restaurant"
	DetailYacht      DetailType = "yacht"
	DetailActivity   DetailType = "activity"
	DetailService    DetailType = "service"
)

// Details is a tagged union of booking-type-specific payloads. Exactly the
// variant named by Type is populated.
type Details struct {
	Type       DetailType         `json:"type"`
	Hotel      *HotelDetails      `json:"hotel,omitempty"`
	Restaurant *RestaurantDetails `json:"restaurant,omitempty"`
	Yacht      *YachtDetails      `json:"yacht,omitempty"`
	Activity   *ActivityDetails   `json:"activity,omitempty"`
	Service    *ServiceDetails    `json:"service,omitempty"`
}

type HotelDetails struct {
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Guests       int    `json:"guests"`
	RoomType     string `json:"room_type,omitempty"`
}

type RestaurantDetails struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"party_size"`
	Occasion  string `json:"occasion,omitempty"`
}

type YachtDetails struct {
	Date    string `json:"date"`
	Hours   int    `json:"hours"`
	Guests  int    `json:"guests"`
	Package string `json:"package,omitempty"`
}

type ActivityDetails struct {
	Date         string `json:"date"`
	Participants int    `json:"participants"`
	ActivityName string `json:"activity_name"`
}

type ServiceDetails struct {
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	ServiceName string `json:"service_name"`
	Notes       string `json:"notes,omitempty"`
}

// Valid reports whether exactly the variant named by Type is set.
func (d Details) Valid() bool {
	var want, others int
	for _, v := range []struct {
		t   DetailType
		set bool
	}{
		{DetailHotel, d.Hotel != nil},
		{DetailRestaurant, d.Restaurant != nil},
		{DetailYacht, d.Yacht != nil},
		{DetailActivity, d.Activity != nil},
		{DetailService, d.Service != nil},
	} {
		if !v.set {
			continue
		}
		if v.t == d.Type {
			want++
		} else {
			others++
		}
	}
	return want == 1 && others == 0
}
