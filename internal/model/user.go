package model

import "time"

// User is the subset of the identity provider's `users` table this service
// reads.  Accounts are created and authenticated elsewhere; orders only
// need to know the user exists and is active.
//
// Fields:
//  ID        – primary key, the `sub` claim of access tokens.
//  Email     – unique email address.
//  Role      – CUSTOMER or ADMIN.
//  IsActive  – inactive accounts cannot place orders.
//  CreatedAt – timestamp of creation.
type User struct {
    ID        uint64    // users.id
    Email     string    // users.email
    Role      string    // users.role
    IsActive  bool      // users.is_active
    CreatedAt time.Time // users.created_at
}
