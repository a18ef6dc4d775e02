// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pb

import (
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	// DefaultGranularity is the coordinate resolution assumed when a block
	// does not carry its own, in units of nanodegrees.
	DefaultGranularity = 100

	// DefaultDateGranularity is the timestamp resolution assumed when a
	// block does not carry its own, in units of milliseconds.
	DefaultDateGranularity = 1000
)

// HeaderBBox bounds the data contained in the file, in nanodegrees.
type HeaderBBox struct {
	Left   int64
	Right  int64
	Top    int64
	Bottom int64
}

func (m *HeaderBBox) GetLeft() int64   { return m.Left }
func (m *HeaderBBox) GetRight() int64  { return m.Right }
func (m *HeaderBBox) GetTop() int64    { return m.Top }
func (m *HeaderBBox) GetBottom() int64 { return m.Bottom }

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *HeaderBBox) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("header bbox", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1, 2, 3, 4:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				d := protowire.DecodeZigZag(v)
				switch num {
				case 1:
					m.Left = d
				case 2:
					m.Right = d
				case 3:
					m.Top = d
				case 4:
					m.Bottom = d
				}
			}
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("header bbox", num, err)
		}

		b = b[n:]
	}

	return nil
}

// HeaderBlock is the content of an OSMHeader blob.
type HeaderBlock struct {
	Bbox                             *HeaderBBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	Writingprogram                   string
	Source                           string
	OsmosisReplicationTimestamp      *int64
	OsmosisReplicationSequenceNumber int64
	OsmosisReplicationBaseUrl        string
}

func (m *HeaderBlock) GetRequiredFeatures() []string { return m.RequiredFeatures }
func (m *HeaderBlock) GetOptionalFeatures() []string { return m.OptionalFeatures }
func (m *HeaderBlock) GetWritingprogram() string     { return m.Writingprogram }
func (m *HeaderBlock) GetSource() string             { return m.Source }

func (m *HeaderBlock) GetOsmosisReplicationSequenceNumber() int64 {
	return m.OsmosisReplicationSequenceNumber
}

func (m *HeaderBlock) GetOsmosisReplicationBaseUrl() string {
	return m.OsmosisReplicationBaseUrl
}

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *HeaderBlock) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("header block", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Bbox = &HeaderBBox{}
				err = m.Bbox.Unmarshal(v)
			}
		case 4:
			var s string
			if s, n, err = consumeString(b); err == nil {
				m.RequiredFeatures = append(m.RequiredFeatures, s)
			}
		case 5:
			var s string
			if s, n, err = consumeString(b); err == nil {
				m.OptionalFeatures = append(m.OptionalFeatures, s)
			}
		case 16:
			m.Writingprogram, n, err = consumeString(b)
		case 17:
			m.Source, n, err = consumeString(b)
		case 32:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				ts := int64(v)
				m.OsmosisReplicationTimestamp = &ts
			}
		case 33:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.OsmosisReplicationSequenceNumber = int64(v)
			}
		case 34:
			m.OsmosisReplicationBaseUrl, n, err = consumeString(b)
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("header block", num, err)
		}

		b = b[n:]
	}

	return nil
}

// StringTable holds a block's raw byte strings.  Index 0 is used as a
// delimiter and is always the empty string.
type StringTable struct {
	S [][]byte
}

func (m *StringTable) GetS() [][]byte {
	if m == nil {
		return nil
	}

	return m.S
}

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *StringTable) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("string table", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.S = append(m.S, v)
			}
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("string table", num, err)
		}

		b = b[n:]
	}

	return nil
}

// PrimitiveBlock is the content of an OSMData blob: delta-scaling
// parameters, the shared string table, and the entity groups.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     *int32
	DateGranularity *int32
	LatOffset       int64
	LonOffset       int64
}

func (m *PrimitiveBlock) GetStringtable() *StringTable        { return m.Stringtable }
func (m *PrimitiveBlock) GetPrimitivegroup() []*PrimitiveGroup { return m.Primitivegroup }
func (m *PrimitiveBlock) GetLatOffset() int64                 { return m.LatOffset }
func (m *PrimitiveBlock) GetLonOffset() int64                 { return m.LonOffset }

func (m *PrimitiveBlock) GetGranularity() int32 {
	if m.Granularity == nil {
		return DefaultGranularity
	}

	return *m.Granularity
}

func (m *PrimitiveBlock) GetDateGranularity() int32 {
	if m.DateGranularity == nil {
		return DefaultDateGranularity
	}

	return *m.DateGranularity
}

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *PrimitiveBlock) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("primitive block", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Stringtable = &StringTable{}
				err = m.Stringtable.Unmarshal(v)
			}
		case 2:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				pg := &PrimitiveGroup{}
				if err = pg.Unmarshal(v); err == nil {
					m.Primitivegroup = append(m.Primitivegroup, pg)
				}
			}
		case 17:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				g := int32(v)
				m.Granularity = &g
			}
		case 18:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				g := int32(v)
				m.DateGranularity = &g
			}
		case 19:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.LatOffset = protowire.DecodeZigZag(v)
			}
		case 20:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.LonOffset = protowire.DecodeZigZag(v)
			}
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("primitive block", num, err)
		}

		b = b[n:]
	}

	return nil
}

// PrimitiveGroup carries exactly one populated entity variant.
type PrimitiveGroup struct {
	Nodes     []*Node
	Dense     *DenseNodes
	Ways      []*Way
	Relations []*Relation
}

func (m *PrimitiveGroup) GetNodes() []*Node         { return m.Nodes }
func (m *PrimitiveGroup) GetDense() *DenseNodes     { return m.Dense }
func (m *PrimitiveGroup) GetWays() []*Way           { return m.Ways }
func (m *PrimitiveGroup) GetRelations() []*Relation { return m.Relations }

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *PrimitiveGroup) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("primitive group", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				node := &Node{}
				if err = node.Unmarshal(v); err == nil {
					m.Nodes = append(m.Nodes, node)
				}
			}
		case 2:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Dense = &DenseNodes{}
				err = m.Dense.Unmarshal(v)
			}
		case 3:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				way := &Way{}
				if err = way.Unmarshal(v); err == nil {
					m.Ways = append(m.Ways, way)
				}
			}
		case 4:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				rel := &Relation{}
				if err = rel.Unmarshal(v); err == nil {
					m.Relations = append(m.Relations, rel)
				}
			}
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("primitive group", num, err)
		}

		b = b[n:]
	}

	return nil
}

// Info is the non-dense metadata record attached to nodes, ways, and
// relations.
type Info struct {
	Version   *int32
	Timestamp int64
	Changeset int64
	Uid       int32
	UserSid   uint32
	Visible   *bool
}

func (m *Info) GetVersion() int32 {
	if m == nil || m.Version == nil {
		return -1
	}

	return *m.Version
}

func (m *Info) GetTimestamp() int64 {
	if m == nil {
		return 0
	}

	return m.Timestamp
}

func (m *Info) GetChangeset() int64 {
	if m == nil {
		return 0
	}

	return m.Changeset
}

func (m *Info) GetUid() int32 {
	if m == nil {
		return 0
	}

	return m.Uid
}

func (m *Info) GetUserSid() uint32 {
	if m == nil {
		return 0
	}

	return m.UserSid
}

func (m *Info) GetVisible() bool {
	if m == nil || m.Visible == nil {
		return true
	}

	return *m.Visible
}

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *Info) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("info", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error
		var v uint64

		switch num {
		case 1:
			if v, n, err = consumeVarint(b); err == nil {
				ver := int32(v)
				m.Version = &ver
			}
		case 2:
			if v, n, err = consumeVarint(b); err == nil {
				m.Timestamp = int64(v)
			}
		case 3:
			if v, n, err = consumeVarint(b); err == nil {
				m.Changeset = int64(v)
			}
		case 4:
			if v, n, err = consumeVarint(b); err == nil {
				m.Uid = int32(v)
			}
		case 5:
			if v, n, err = consumeVarint(b); err == nil {
				m.UserSid = uint32(v)
			}
		case 6:
			if v, n, err = consumeVarint(b); err == nil {
				vis := v != 0
				m.Visible = &vis
			}
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("info", num, err)
		}

		b = b[n:]
	}

	return nil
}

// Node is the plain, one-message-per-node encoding.
type Node struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  int64
	Lon  int64
}

func (m *Node) GetId() int64     { return m.Id }
func (m *Node) GetKeys() []uint32 { return m.Keys }
func (m *Node) GetVals() []uint32 { return m.Vals }
func (m *Node) GetInfo() *Info   { return m.Info }
func (m *Node) GetLat() int64    { return m.Lat }
func (m *Node) GetLon() int64    { return m.Lon }

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *Node) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("node", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.Id = protowire.DecodeZigZag(v)
			}
		case 2:
			m.Keys, n, err = consumeUint32s(m.Keys, typ, b)
		case 3:
			m.Vals, n, err = consumeUint32s(m.Vals, typ, b)
		case 4:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Info = &Info{}
				err = m.Info.Unmarshal(v)
			}
		case 8:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.Lat = protowire.DecodeZigZag(v)
			}
		case 9:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.Lon = protowire.DecodeZigZag(v)
			}
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("node", num, err)
		}

		b = b[n:]
	}

	return nil
}

// DenseInfo carries the delta-coded metadata columns of a DenseNodes
// message.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	Uid       []int32
	UserSid   []int32
	Visible   []bool
}

func (m *DenseInfo) GetVersion() []int32 {
	if m == nil {
		return nil
	}

	return m.Version
}

func (m *DenseInfo) GetTimestamp() []int64 {
	if m == nil {
		return nil
	}

	return m.Timestamp
}

func (m *DenseInfo) GetChangeset() []int64 {
	if m == nil {
		return nil
	}

	return m.Changeset
}

func (m *DenseInfo) GetUid() []int32 {
	if m == nil {
		return nil
	}

	return m.Uid
}

func (m *DenseInfo) GetUserSid() []int32 {
	if m == nil {
		return nil
	}

	return m.UserSid
}

func (m *DenseInfo) GetVisible() []bool {
	if m == nil {
		return nil
	}

	return m.Visible
}

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *DenseInfo) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("dense info", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			m.Version, n, err = consumeInt32s(m.Version, typ, b)
		case 2:
			m.Timestamp, n, err = consumeSint64s(m.Timestamp, typ, b)
		case 3:
			m.Changeset, n, err = consumeSint64s(m.Changeset, typ, b)
		case 4:
			m.Uid, n, err = consumeSint32s(m.Uid, typ, b)
		case 5:
			m.UserSid, n, err = consumeSint32s(m.UserSid, typ, b)
		case 6:
			m.Visible, n, err = consumeBools(m.Visible, typ, b)
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("dense info", num, err)
		}

		b = b[n:]
	}

	return nil
}

// DenseNodes is the columnar, delta-coded encoding of many nodes.
type DenseNodes struct {
	Id        []int64
	Denseinfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

func (m *DenseNodes) GetId() []int64 {
	if m == nil {
		return nil
	}

	return m.Id
}

func (m *DenseNodes) GetDenseinfo() *DenseInfo {
	if m == nil {
		return nil
	}

	return m.Denseinfo
}

func (m *DenseNodes) GetLat() []int64 {
	if m == nil {
		return nil
	}

	return m.Lat
}

func (m *DenseNodes) GetLon() []int64 {
	if m == nil {
		return nil
	}

	return m.Lon
}

func (m *DenseNodes) GetKeysVals() []int32 {
	if m == nil {
		return nil
	}

	return m.KeysVals
}

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *DenseNodes) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("dense nodes", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			m.Id, n, err = consumeSint64s(m.Id, typ, b)
		case 5:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Denseinfo = &DenseInfo{}
				err = m.Denseinfo.Unmarshal(v)
			}
		case 8:
			m.Lat, n, err = consumeSint64s(m.Lat, typ, b)
		case 9:
			m.Lon, n, err = consumeSint64s(m.Lon, typ, b)
		case 10:
			m.KeysVals, n, err = consumeInt32s(m.KeysVals, typ, b)
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("dense nodes", num, err)
		}

		b = b[n:]
	}

	return nil
}

// Way is an ordered list of delta-coded node references plus tags.
type Way struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

func (m *Way) GetId() int64     { return m.Id }
func (m *Way) GetKeys() []uint32 { return m.Keys }
func (m *Way) GetVals() []uint32 { return m.Vals }
func (m *Way) GetInfo() *Info   { return m.Info }
func (m *Way) GetRefs() []int64 { return m.Refs }

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *Way) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("way", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.Id = int64(v)
			}
		case 2:
			m.Keys, n, err = consumeUint32s(m.Keys, typ, b)
		case 3:
			m.Vals, n, err = consumeUint32s(m.Vals, typ, b)
		case 4:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Info = &Info{}
				err = m.Info.Unmarshal(v)
			}
		case 8:
			m.Refs, n, err = consumeSint64s(m.Refs, typ, b)
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("way", num, err)
		}

		b = b[n:]
	}

	return nil
}

// Relation_MemberType enumerates what kind of entity a relation member
// refers to.
type Relation_MemberType int32

const (
	Relation_NODE     Relation_MemberType = 0
	Relation_WAY      Relation_MemberType = 1
	Relation_RELATION Relation_MemberType = 2
)

// Relation documents a relationship between two or more entities.
type Relation struct {
	Id       int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64
	Types    []Relation_MemberType
}

func (m *Relation) GetId() int64                   { return m.Id }
func (m *Relation) GetKeys() []uint32              { return m.Keys }
func (m *Relation) GetVals() []uint32              { return m.Vals }
func (m *Relation) GetInfo() *Info                 { return m.Info }
func (m *Relation) GetRolesSid() []int32           { return m.RolesSid }
func (m *Relation) GetMemids() []int64             { return m.Memids }
func (m *Relation) GetTypes() []Relation_MemberType { return m.Types }

// Unmarshal parses the wire-format message in b and stores the result in m.
func (m *Relation) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return wireError("relation", num, protowire.ParseError(n))
		}

		b = b[n:]

		var err error

		switch num {
		case 1:
			var v uint64
			if v, n, err = consumeVarint(b); err == nil {
				m.Id = int64(v)
			}
		case 2:
			m.Keys, n, err = consumeUint32s(m.Keys, typ, b)
		case 3:
			m.Vals, n, err = consumeUint32s(m.Vals, typ, b)
		case 4:
			var v []byte
			if v, n, err = consumeBytes(b); err == nil {
				m.Info = &Info{}
				err = m.Info.Unmarshal(v)
			}
		case 8:
			m.RolesSid, n, err = consumeInt32s(m.RolesSid, typ, b)
		case 9:
			m.Memids, n, err = consumeSint64s(m.Memids, typ, b)
		case 10:
			n, err = unpackVarints(typ, b, func(v uint64) {
				m.Types = append(m.Types, Relation_MemberType(v))
			})
		default:
			n, err = skipField(num, typ, b)
		}

		if err != nil {
			return wireError("relation", num, err)
		}

		b = b[n:]
	}

	return nil
}
