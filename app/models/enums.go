package models

// WorkerStatus defines the employment status of a worker.
type WorkerStatus string

const (
	WorkerActive   WorkerStatus = "Active"
	WorkerInactive WorkerStatus = "Inactive"
)

// Valid reports whether s is a known worker status.
func (s WorkerStatus) Valid() bool {
	return s == WorkerActive || s == WorkerInactive
}

// AttendanceStatus defines the possible status values for a daily attendance record.
type AttendanceStatus string

const (
	Present AttendanceStatus = "Present"
	Absent  AttendanceStatus = "Absent"
	Leave   AttendanceStatus = "Leave"
	Off     AttendanceStatus = "Off"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case Present, Absent, Leave, Off:
		return true
	}
	return false
}

// WorkOrderStatus defines the lifecycle states of a work order.
type WorkOrderStatus string

const (
	WorkOrderOpen       WorkOrderStatus = "Open"
	WorkOrderInProgress WorkOrderStatus = "In Progress"
	WorkOrderCompleted  WorkOrderStatus = "Completed"
	WorkOrderClosed     WorkOrderStatus = "Closed"
)

// Valid reports whether s is a known work order status.
func (s WorkOrderStatus) Valid() bool {
	switch s {
	case WorkOrderOpen, WorkOrderInProgress, WorkOrderCompleted, WorkOrderClosed:
		return true
	}
	return false
}

// IsClosed is true for Completed and Closed orders.
func (s WorkOrderStatus) IsClosed() bool {
	return s == WorkOrderCompleted || s == WorkOrderClosed
}

// IsOpen is true while the order still counts against its SLA.
func (s WorkOrderStatus) IsOpen() bool {
	return s == WorkOrderOpen || s == WorkOrderInProgress
}

// WorkOrderPriority defines how urgently a work order must be handled.
type WorkOrderPriority string

const (
	PriorityLow    WorkOrderPriority = "Low"
	PriorityMedium WorkOrderPriority = "Medium"
	PriorityHigh   WorkOrderPriority = "High"
	PriorityUrgent WorkOrderPriority = "Urgent"
)

// VehicleStatus defines the availability of a fleet vehicle.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "Available"
	VehicleInUse       VehicleStatus = "In Use"
	VehicleMaintenance VehicleStatus = "Maintenance"
	VehicleRetired     VehicleStatus = "Retired"
)

// Role names used by the auth middleware.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleAccountant = "accountant"
)
