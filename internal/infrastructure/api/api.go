package api

// API groups the typed endpoints that share one Client.
type API struct {
	Auth          *AuthAPI
	Tickets       *TicketsAPI
	Comments      *CommentsAPI
	Categories    *CategoriesAPI
	Clients       *ClientsAPI
	Addresses     *AddressesAPI
	Contracts     *ContractsAPI
	ServiceOrders *ServiceOrdersAPI
	Users         *UsersAPI
	Mail          *MailAPI
	Dashboard     *DashboardAPI
}

func New(client *Client) *API {
	return &API{
		Auth:          NewAuthAPI(client),
		Tickets:       NewTicketsAPI(client),
		Comments:      NewCommentsAPI(client),
		Categories:    NewCategoriesAPI(client),
		Clients:       NewClientsAPI(client),
		Addresses:     NewAddressesAPI(client),
		Contracts:     NewContractsAPI(client),
		ServiceOrders: NewServiceOrdersAPI(client),
		Users:         NewUsersAPI(client),
		Mail:          NewMailAPI(client),
		Dashboard:     NewDashboardAPI(client),
	}
}
