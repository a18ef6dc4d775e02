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

package decoder

import (
	"fmt"
	"math"
	"time"

	"github.com/geomantic/osmread/internal/core"
	"github.com/geomantic/osmread/internal/pb"
	"github.com/geomantic/osmread/model"
)

// DecodeBlob unpacks an entity-data blob and decodes every group of its
// primitive block, in file order.
func DecodeBlob(blob *pb.Blob) ([]model.Entity, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	unpacked, err := unpack(buf, blob)
	if err != nil {
		return nil, err
	}

	return ParseBlock(unpacked)
}

// ParseBlock decodes a primitive block's bytes into entities, groups in
// block order, entities within a group in decoder order.
func ParseBlock(buf []byte) ([]model.Entity, error) {
	blk := &pb.PrimitiveBlock{}
	if err := blk.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("%w: unable to unmarshal primitive block: %v", ErrDecode, err)
	}

	c := newBlockContext(blk)

	var entities []model.Entity

	for _, pg := range blk.GetPrimitivegroup() {
		decoded, err := c.decodeGroup(pg)
		if err != nil {
			return nil, err
		}

		entities = append(entities, decoded...)
	}

	return entities, nil
}

// blockContext carries the block-scoped state every entity decode needs:
// the shared string table and the delta-scaling parameters.
type blockContext struct {
	strings   *StringTable
	latOffset int64
	lonOffset int64

	granularity int32

	// seconds per timestamp tick; the wire carries milliseconds
	dateGranularity int64
}

func newBlockContext(blk *pb.PrimitiveBlock) *blockContext {
	return &blockContext{
		strings:         NewStringTable(blk.GetStringtable()),
		granularity:     blk.GetGranularity(),
		latOffset:       blk.GetLatOffset(),
		lonOffset:       blk.GetLonOffset(),
		dateGranularity: int64(blk.GetDateGranularity()) / 1000,
	}
}

// groupVariant is the tagged form of a primitive group.  The wire format
// encodes the variant as a product of optional fields; classifying once up
// front lets everything downstream match exhaustively.
type groupVariant int

const (
	groupPlainNodes groupVariant = iota
	groupDenseNodes
	groupWays
	groupRelations
)

// classifyGroup picks the populated variant, in fixed priority order:
// plain nodes, dense nodes, ways, relations.  A group with none is
// malformed.
func classifyGroup(pg *pb.PrimitiveGroup) (groupVariant, error) {
	switch {
	case len(pg.GetNodes()) > 0:
		return groupPlainNodes, nil
	case pg.GetDense() != nil:
		return groupDenseNodes, nil
	case len(pg.GetWays()) > 0:
		return groupWays, nil
	case len(pg.GetRelations()) > 0:
		return groupRelations, nil
	default:
		return 0, fmt.Errorf("%w: group has no populated entity variant", ErrFormat)
	}
}

func (c *blockContext) decodeGroup(pg *pb.PrimitiveGroup) ([]model.Entity, error) {
	variant, err := classifyGroup(pg)
	if err != nil {
		return nil, err
	}

	switch variant {
	case groupPlainNodes:
		return c.decodeNodes(pg.GetNodes())
	case groupDenseNodes:
		return c.decodeDenseNodes(pg.GetDense())
	case groupWays:
		return c.decodeWays(pg.GetWays())
	case groupRelations:
		return c.decodeRelations(pg.GetRelations())
	default:
		panic("unreachable group variant")
	}
}

func (c *blockContext) decodeNodes(nodes []*pb.Node) ([]model.Entity, error) {
	entities := make([]model.Entity, len(nodes))

	for i, node := range nodes {
		info, err := c.decodeInfo(node.GetInfo())
		if err != nil {
			return nil, err
		}

		entities[i] = model.Node{
			ID:   model.ID(node.GetId()),
			Tags: c.decodeTags(node.GetKeys(), node.GetVals()),
			Info: info,
			Lat:  model.ToDegrees(c.latOffset, c.granularity, node.GetLat()),
			Lon:  model.ToDegrees(c.lonOffset, c.granularity, node.GetLon()),
		}
	}

	return entities, nil
}

func (c *blockContext) decodeDenseNodes(dense *pb.DenseNodes) ([]model.Entity, error) {
	ids := dense.GetId()
	lats := dense.GetLat()
	lons := dense.GetLon()

	if len(lats) != len(ids) || len(lons) != len(ids) {
		return nil, fmt.Errorf("%w: dense columns misaligned: %d ids, %d lats, %d lons",
			ErrDecode, len(ids), len(lats), len(lons))
	}

	dic, err := c.newDenseInfoContext(dense.GetDenseinfo(), len(ids))
	if err != nil {
		return nil, err
	}

	tic := newTagStream(c.strings, dense.GetKeysVals())
	entities := make([]model.Entity, 0, len(ids))

	var id, lat, lon int64

	for i := range ids {
		id += ids[i]
		lat += lats[i]
		lon += lons[i]

		tags, err := tic.next()
		if err != nil {
			return nil, err
		}

		info, err := dic.decodeInfo(i)
		if err != nil {
			return nil, err
		}

		entities = append(entities, model.Node{
			ID:   model.ID(id),
			Tags: tags,
			Info: info,
			Lat:  model.ToDegrees(c.latOffset, c.granularity, lat),
			Lon:  model.ToDegrees(c.lonOffset, c.granularity, lon),
		})
	}

	return entities, nil
}

func (c *blockContext) decodeWays(ways []*pb.Way) ([]model.Entity, error) {
	entities := make([]model.Entity, len(ways))

	for i, way := range ways {
		refs := runningSum(way.GetRefs())
		nodeIDs := make([]model.ID, len(refs))

		for j, ref := range refs {
			nodeIDs[j] = model.ID(ref)
		}

		info, err := c.decodeInfo(way.GetInfo())
		if err != nil {
			return nil, err
		}

		entities[i] = model.Way{
			ID:      model.ID(way.GetId()),
			Tags:    c.decodeTags(way.GetKeys(), way.GetVals()),
			NodeIDs: nodeIDs,
			Info:    info,
		}
	}

	return entities, nil
}

func (c *blockContext) decodeRelations(relations []*pb.Relation) ([]model.Entity, error) {
	entities := make([]model.Entity, len(relations))

	for i, rel := range relations {
		members, err := c.decodeMembers(rel)
		if err != nil {
			return nil, err
		}

		info, err := c.decodeInfo(rel.GetInfo())
		if err != nil {
			return nil, err
		}

		entities[i] = model.Relation{
			ID:      model.ID(rel.GetId()),
			Tags:    c.decodeTags(rel.GetKeys(), rel.GetVals()),
			Info:    info,
			Members: members,
		}
	}

	return entities, nil
}

// decodeMembers zips the relation's parallel member columns.  Member ids
// are delta-coded; types and roles are not.  A member whose role index
// resolves to an absent string is dropped wholesale rather than kept with
// an empty role; the empty role itself (index 0) is kept.
func (c *blockContext) decodeMembers(rel *pb.Relation) ([]model.Member, error) {
	memids := runningSum(rel.GetMemids())
	memtypes := rel.GetTypes()
	memroles := rel.GetRolesSid()

	n := min(len(memids), len(memtypes), len(memroles))
	members := make([]model.Member, 0, n)

	for i := 0; i < n; i++ {
		mt, err := decodeMemberType(memtypes[i])
		if err != nil {
			return nil, err
		}

		role, ok := c.strings.Get(int(memroles[i]))
		if !ok {
			continue
		}

		members = append(members, model.Member{
			ID:   model.ID(memids[i]),
			Type: mt,
			Role: role,
		})
	}

	return members, nil
}

// decodeTags zips parallel key and value index columns, resolving both
// sides through the string table; a pair with an absent side is dropped.
func (c *blockContext) decodeTags(keyIDs, valIDs []uint32) map[string]string {
	n := min(len(keyIDs), len(valIDs))
	tags := make(map[string]string, n)

	for i := 0; i < n; i++ {
		key, ok := c.strings.Get(int(keyIDs[i]))
		if !ok {
			continue
		}

		val, ok := c.strings.Get(int(valIDs[i]))
		if !ok {
			continue
		}

		tags[key] = val
	}

	return tags
}

// decodeInfo reads the absolute (non-delta) metadata record of a plain
// node, way, or relation.  Its timestamp is a raw epoch-seconds value, not
// scaled by the block's date granularity.
func (c *blockContext) decodeInfo(info *pb.Info) (*model.Info, error) {
	out := &model.Info{Visible: true}
	if info == nil {
		return out, nil
	}

	user, ok := c.strings.Get(int(info.GetUserSid()))
	if !ok {
		return nil, fmt.Errorf("%w: author name at string index %d", ErrEncoding, info.GetUserSid())
	}

	out.Version = info.GetVersion()
	out.Timestamp = time.Unix(info.GetTimestamp(), 0).UTC()
	out.Changeset = info.GetChangeset()
	out.UID = model.UID(info.GetUid())
	out.User = user
	out.Visible = info.GetVisible()

	return out, nil
}

// denseInfoContext accumulates the delta-coded metadata columns of a dense
// group.  All accumulators are seeded at zero per group; the version
// column is absolute, not delta-coded.
type denseInfoContext struct {
	table           *StringTable
	dateGranularity int64

	versions     []int32
	uids         []int32
	timestamps   []int64
	changesets   []int64
	userSids     []int32
	visibilities []bool

	uid       int64
	timestamp int64
	changeset int64
	userSid   int32
}

func (c *blockContext) newDenseInfoContext(di *pb.DenseInfo, n int) (*denseInfoContext, error) {
	if di == nil {
		return nil, nil
	}

	dic := &denseInfoContext{
		table:           c.strings,
		dateGranularity: c.dateGranularity,
		versions:        di.GetVersion(),
		uids:            di.GetUid(),
		timestamps:      di.GetTimestamp(),
		changesets:      di.GetChangeset(),
		userSids:        di.GetUserSid(),
		visibilities:    di.GetVisible(),
	}

	if len(dic.versions) != n || len(dic.uids) != n || len(dic.timestamps) != n ||
		len(dic.changesets) != n || len(dic.userSids) != n {
		return nil, fmt.Errorf("%w: dense info columns misaligned with %d nodes", ErrDecode, n)
	}

	return dic, nil
}

// decodeInfo produces the i-th node's metadata.  A nil context means the
// group carries no metadata at all; such nodes are visible by definition.
func (dic *denseInfoContext) decodeInfo(i int) (*model.Info, error) {
	if dic == nil {
		return &model.Info{Visible: true}, nil
	}

	dic.uid += int64(dic.uids[i])
	dic.timestamp += dic.timestamps[i]
	dic.changeset += dic.changesets[i]
	dic.userSid += dic.userSids[i]

	if dic.uid < 0 || dic.uid > math.MaxInt32 {
		return nil, fmt.Errorf("%w: user id %d outside the valid positive 32-bit range", ErrRange, dic.uid)
	}

	user, ok := dic.table.Get(int(dic.userSid))
	if !ok {
		return nil, fmt.Errorf("%w: user name at string index %d", ErrEncoding, dic.userSid)
	}

	info := &model.Info{
		Version:   dic.versions[i],
		UID:       model.UID(dic.uid),
		Timestamp: time.Unix(dic.timestamp*dic.dateGranularity, 0).UTC(),
		Changeset: dic.changeset,
		User:      user,
		Visible:   true,
	}

	// visibility defaults to true when the column is absent or short
	if i < len(dic.visibilities) {
		info.Visible = dic.visibilities[i]
	}

	return info, nil
}

// decodeMemberType converts the wire enum to an EntityType.
func decodeMemberType(mt pb.Relation_MemberType) (model.EntityType, error) {
	switch mt {
	case pb.Relation_NODE:
		return model.NODE, nil
	case pb.Relation_WAY:
		return model.WAY, nil
	case pb.Relation_RELATION:
		return model.RELATION, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized member type %d", ErrDecode, mt)
	}
}
