package client

import (
	"net/url"
	"strconv"
)

// Backend API paths. Trailing slashes are significant to the backend router.
const (
	EndpointLogin    = "/api/auth/login/"
	EndpointRegister = "/api/auth/register/"
	EndpointProfile  = "/api/auth/profile/"

	EndpointDashboardStats = "/api/dashboard/stats/"

	EndpointJobs    = "/api/jobs/"
	EndpointRentals = "/api/rentals/"
	EndpointDevices = "/api/devices/"
	EndpointReports = "/api/reports/"
	EndpointUsers   = "/api/users/"
)

func JobDetail(id int) string {
	return EndpointJobs + strconv.Itoa(id) + "/"
}

func RentalDetail(id int) string {
	return EndpointRentals + strconv.Itoa(id) + "/"
}

func RentalReturn(id int) string {
	return RentalDetail(id) + "return/"
}

func DeviceDetail(id int) string {
	return EndpointDevices + strconv.Itoa(id) + "/"
}

func DeviceBySerial(serial string) string {
	return EndpointDevices + "?" + url.Values{"serial_no": {serial}}.Encode()
}

func ReportDetail(id int) string {
	return EndpointReports + strconv.Itoa(id) + "/"
}

func ReportsByJob(jobID int) string {
	return EndpointReports + "?" + url.Values{"job": {strconv.Itoa(jobID)}}.Encode()
}

// UserDelete deactivates the user; the backend keeps the account
func UserDelete(id int) string {
	return EndpointUsers + strconv.Itoa(id) + "/delete/"
}
