// TickerDeck Core
// Copyright (c) 2026 The TickerDeck Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of TickerDeck Core.
//
// TickerDeck Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// TickerDeck Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TickerDeck Core.  If not, see <http://www.gnu.org/licenses/>.

package config

// AppVersion is set at build time via ldflags.
var AppVersion = "DEVELOPMENT"

const (
	AppName = "tickerdeck"
	LogFile = "core.log"
	CfgFile = "config.toml"
)
