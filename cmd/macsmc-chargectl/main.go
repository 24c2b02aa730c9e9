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

package main

import (
	"log"
	"os"

	"github.com/mactel-tools/macsmc-chargectl/internal/chargectl"
)

var version = "<not set>"

func main() {
	if err := chargectl.Run(os.Args[1:], version); err != nil {
		log.Fatal(err)
	}
}
