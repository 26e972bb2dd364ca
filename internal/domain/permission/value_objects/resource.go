package value_objects

import "fmt"

type Resource string

const (
	ResourceTicket       Resource = "ticket"
	ResourceComment      Resource = "comment"
	ResourceCategory     Resource = "category"
	ResourceClient       Resource = "client"
	ResourceAddress      Resource = "address"
	ResourceContract     Resource = "contract"
	ResourceServiceOrder Resource = "service_order"
	ResourceUser         Resource = "user"
	ResourceMail         Resource = "mail"
	ResourceDashboard    Resource = "dashboard"
)

func NewResource(resource string) (Resource, error) {
	if resource == "" {
		return "", fmt.Errorf("resource cannot be empty")
	}
	if len(resource) > 50 {
		return "", fmt.Errorf("resource too long (max 50 characters)")
	}
	return Resource(resource), nil
}

func (r Resource) String() string {
	return string(r)
}
