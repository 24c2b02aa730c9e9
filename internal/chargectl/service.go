/*
macsmc-chargectl - Keeps the Apple SMC battery within a safe charge band
Copyright (C) 2024, The macsmc-chargectl authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package chargectl

import (
	"errors"

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"
)

const (
	dbusName = "org.mactel.ChargeControl"
	dbusPath = "/org/mactel/ChargeControl"
)

type service struct {
	store *BatteryStore
}

func startService(store *BatteryStore) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	s := &service{
		store: store,
	}
	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")
	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

// State returns the battery capacity in percent and the charge behaviour
// currently in effect.
func (s service) State() (int32, string, *dbus.Error) {
	capacity, err := s.store.Capacity()
	if err != nil {
		return 0, "", makeDbusError(".StateError", err)
	}
	behaviour, err := s.store.Behaviour()
	if err != nil {
		return 0, "", makeDbusError(".StateError", err)
	}
	return int32(capacity), behaviour.String(), nil
}

// SetBehaviour writes the given charge behaviour to the power supply.
// The next poll re-evaluates it and may override the request.
func (s service) SetBehaviour(behaviour string) *dbus.Error {
	b, err := ParseBehaviour(behaviour)
	if err != nil {
		return makeDbusError(".SetBehaviourError", err)
	}
	log.Info("Charge behaviour ", b, " requested over D-Bus.")
	if err := s.store.SetBehaviour(b); err != nil {
		return makeDbusError(".SetBehaviourError", err)
	}
	return nil
}

func makeDbusError(name string, err error) *dbus.Error {
	return &dbus.Error{
		Name: dbusName + name,
		Body: []interface{}{err.Error()},
	}
}
