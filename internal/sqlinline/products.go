package sqlinline

const QEnsureProductSchema = `--sql 3f6c2a1e-8b47-4d2a-9c51-0e7b5d2f4a10
create table if not exists products (
  sku               bigint primary key,
  status            text not null default 'Pending',
  category          text,
  pre_image_url     text,
  wax_image_url     text,
  cast_image_url    text,
  final_image_url   text,
  wax_description   text,
  cast_description  text,
  final_description text,
  created_at        timestamptz not null default now()
);
create table if not exists generated_images (
  id         uuid primary key,
  prompt     text not null,
  image_url  text not null,
  model_used text not null,
  size       bigint not null,
  created_at timestamptz not null default now()
);
create index if not exists generated_images_created_at_idx on generated_images (created_at desc);
`

const QSelectProductBySKU = `--sql 9a2d4c6e-1f3b-4e8a-b7c9-5d0e2f4a6b81
select
  sku,
  status,
  coalesce(category, ''),
  coalesce(pre_image_url, ''),
  coalesce(wax_image_url, ''),
  coalesce(cast_image_url, ''),
  coalesce(final_image_url, ''),
  coalesce(wax_description, ''),
  coalesce(cast_description, ''),
  coalesce(final_description, ''),
  created_at
from products
where sku = $1::bigint
limit 1;
`

// QApplyProductSlot writes exactly one slot column, selected by its slot name,
// in a single statement so concurrent saves to different slots of the same
// product never overwrite each other.
const QApplyProductSlot = `--sql c4e8a2b6-7d1f-4a3c-9e5b-2f6d8a0c4e17
update products set
  wax_image_url     = case when $2::text = 'Wax Image URL'     then $3::text else wax_image_url end,
  cast_image_url    = case when $2::text = 'Cast Image URL'    then $3::text else cast_image_url end,
  final_image_url   = case when $2::text = 'Final Image URL'   then $3::text else final_image_url end,
  wax_description   = case when $2::text = 'Wax Description'   then $3::text else wax_description end,
  cast_description  = case when $2::text = 'Cast Description'  then $3::text else cast_description end,
  final_description = case when $2::text = 'Final Description' then $3::text else final_description end
where sku = $1::bigint
returning
  sku,
  status,
  coalesce(category, ''),
  coalesce(pre_image_url, ''),
  coalesce(wax_image_url, ''),
  coalesce(cast_image_url, ''),
  coalesce(final_image_url, ''),
  coalesce(wax_description, ''),
  coalesce(cast_description, ''),
  coalesce(final_description, ''),
  created_at;
`

const QMarkProductFulfilled = `--sql 5b7d9f1a-3c5e-4b7d-8f9a-1c3e5a7b9d02
update products
set status = 'Fulfilled',
    created_at = $2::timestamptz
where sku = $1::bigint
  and status <> 'Fulfilled'
  and coalesce(wax_image_url, '') <> ''
  and coalesce(cast_image_url, '') <> ''
  and coalesce(final_image_url, '') <> ''
  and coalesce(wax_description, '') <> ''
  and coalesce(cast_description, '') <> ''
  and coalesce(final_description, '') <> '';
`

const QMarkProductPending = `--sql e1a3c5e7-9b2d-4f6a-8c0e-7a9b1d3f5e24
update products
set status = 'Pending'
where sku = $1::bigint
  and coalesce(status, '') = '';
`
