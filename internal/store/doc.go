// Package store defines the persistence interfaces consumed by the
// services, together with the common error values shared by all store
// implementations. Concrete implementations live under platform/.
package store
